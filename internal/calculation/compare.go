package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareRegimes computes tax under both regimes for the same income and reports
// the cheaper one. Ties go to the new regime.
func (e *Engine) CompareRegimes(grossIncome, deductions decimal.Decimal, age domain.AgeBracket) domain.RegimeComparison {
	cmp := CompareRegimesWithRules(grossIncome, deductions, age, e.Rules)
	e.Logger.Debugf("regime comparison: old=%s new=%s recommended=%s savings=%s",
		cmp.OldResult.TotalTax.StringFixed(2), cmp.NewResult.TotalTax.StringFixed(2),
		cmp.RecommendedRegime, cmp.AbsoluteSavings.StringFixed(2))
	return cmp
}

// CompareProfile runs CompareRegimes for a configured taxpayer profile and carries
// over the regime it currently files under
func (e *Engine) CompareProfile(p domain.TaxProfile) domain.RegimeComparison {
	cmp := e.CompareRegimes(p.GrossIncome, p.TotalDeductions(), p.Bracket())
	cmp.Name = p.Name
	cmp.CurrentRegime = p.Regime
	return cmp
}

// CompareRegimesWithRules is the pure form of Engine.CompareRegimes
func CompareRegimesWithRules(grossIncome, deductions decimal.Decimal, age domain.AgeBracket, rules domain.TaxRules) domain.RegimeComparison {
	oldIn := domain.TaxInput{GrossIncome: grossIncome, Deductions: deductions, Regime: domain.RegimeOld, AgeBracket: age}
	newIn := domain.TaxInput{GrossIncome: grossIncome, Deductions: deductions, Regime: domain.RegimeNew, AgeBracket: age}

	oldRes := ComputeTaxWithSlabs(oldIn, rules.SlabsFor(domain.RegimeOld, age), rules)
	newRes := ComputeTaxWithSlabs(newIn, rules.SlabsFor(domain.RegimeNew, age), rules)

	recommended := domain.RegimeOld
	if newRes.TotalTax.LessThanOrEqual(oldRes.TotalTax) {
		recommended = domain.RegimeNew
	}

	return domain.RegimeComparison{
		OldResult:         oldRes,
		NewResult:         newRes,
		RecommendedRegime: recommended,
		AbsoluteSavings:   newRes.TotalTax.Sub(oldRes.TotalTax).Abs(),
	}
}
