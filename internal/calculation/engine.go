package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine computes income tax under a fixed set of rules
type Engine struct {
	Rules  domain.TaxRules
	Logger Logger
	Debug  bool // Log every slab of every computation
}

// NewEngine creates an engine with the built-in rules
func NewEngine() *Engine {
	return &Engine{
		Rules:  DefaultRules(),
		Logger: NopLogger{},
	}
}

// NewEngineWithRules creates an engine with caller-supplied rules
func NewEngineWithRules(rules domain.TaxRules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax rules: %w", err)
	}
	return &Engine{
		Rules:  rules,
		Logger: NopLogger{},
	}, nil
}

// SetLogger replaces the engine logger; nil installs NopLogger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ComputeTax computes total tax payable under one regime
func (e *Engine) ComputeTax(grossIncome, deductions decimal.Decimal, regime domain.Regime, age domain.AgeBracket) domain.TaxComputationResult {
	return e.ComputeTaxInput(domain.TaxInput{
		GrossIncome: grossIncome,
		Deductions:  deductions,
		Regime:      regime,
		AgeBracket:  age,
	})
}

// ComputeTaxInput is ComputeTax taking a TaxInput
func (e *Engine) ComputeTaxInput(in domain.TaxInput) domain.TaxComputationResult {
	slabs := e.Rules.SlabsFor(in.Regime, in.AgeBracket)
	result := ComputeTaxWithSlabs(in, slabs, e.Rules)

	if e.Debug {
		for _, line := range result.Slabs {
			e.Logger.Debugf("%s slab from %s at %s: taxed %s, tax %s",
				in.Regime, line.Lower.StringFixed(0), line.Rate.String(), line.Taxed.StringFixed(2), line.Tax.StringFixed(2))
		}
	}
	e.Logger.Debugf("%s regime: gross=%s taxable=%s grossTax=%s rebate=%s cess=%s total=%s",
		in.Regime, result.GrossIncome.StringFixed(2), result.TaxableIncome.StringFixed(2), result.GrossTax.StringFixed(2),
		result.Rebate.StringFixed(2), result.CessAmount.StringFixed(2), result.TotalTax.StringFixed(2))

	return result
}

// ComputeTaxWithSlabs is the pure tax computation. The slab table is passed in
// explicitly; rules supplies the standard deduction, rebate and cess parameters.
// Negative money inputs are treated as zero and no input produces an error.
func ComputeTaxWithSlabs(in domain.TaxInput, slabs domain.SlabTable, rules domain.TaxRules) domain.TaxComputationResult {
	gross := nonNegative(in.GrossIncome)

	taxable := gross
	if in.Regime == domain.RegimeOld {
		taxable = nonNegative(gross.Sub(nonNegative(in.Deductions)))
	}
	if taxable.GreaterThan(rules.StandardDeductionThreshold) {
		taxable = nonNegative(taxable.Sub(rules.StandardDeduction))
	}

	grossTax, lines := walkSlabs(taxable, slabs)

	rebate := rules.RebateFor(in.Regime).Amount(taxable, grossTax)
	netTax := nonNegative(grossTax.Sub(rebate))
	cess := netTax.Mul(rules.CessRate)
	total := netTax.Add(cess)

	effective := decimal.Zero
	if gross.IsPositive() {
		effective = total.Div(gross).Mul(hundred)
	}

	return domain.TaxComputationResult{
		Regime:               in.Regime,
		AgeBracket:           in.AgeBracket,
		GrossIncome:          gross,
		TaxableIncome:        taxable,
		GrossTax:             grossTax,
		Rebate:               rebate,
		NetTax:               netTax,
		CessAmount:           cess,
		TotalTax:             total,
		EffectiveRatePercent: effective,
		Slabs:                lines,
	}
}

// walkSlabs applies each slab's rate to the part of income that falls inside it.
// The unbounded slab takes whatever remains and ends the walk.
func walkSlabs(taxable decimal.Decimal, slabs domain.SlabTable) (decimal.Decimal, []domain.SlabLine) {
	tax := decimal.Zero
	remaining := taxable
	prev := decimal.Zero
	var lines []domain.SlabLine

	for _, slab := range slabs {
		if !remaining.IsPositive() {
			break
		}

		taxed := remaining
		if !slab.Unbounded {
			taxed = nonNegative(decimal.Min(remaining, slab.UpperBound.Sub(prev)))
		}

		slabTax := taxed.Mul(slab.Rate)
		tax = tax.Add(slabTax)
		remaining = remaining.Sub(taxed)

		lines = append(lines, domain.SlabLine{
			Lower:     prev,
			Upper:     slab.UpperBound,
			Unbounded: slab.Unbounded,
			Rate:      slab.Rate,
			Taxed:     taxed,
			Tax:       slabTax,
		})

		if slab.Unbounded {
			break
		}
		prev = slab.UpperBound
	}

	return tax, lines
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
