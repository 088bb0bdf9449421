package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// RULE ASSUMPTIONS:
//
// 1. Slab tables follow FY 2023-24 (AY 2024-25).
//    - New regime: 3L/6L/9L/12L/15L bounds at 0/5/10/15/20/30%
//    - Old regime: exemption limit 2.5L (below 60), 3L (60-80), 5L (80+)
//
// 2. A flat 50,000 standard deduction is applied in both regimes once taxable
//    income exceeds 50,000. Real law differs by regime and year; the engine keeps
//    this behaviour for compatibility with existing saved scenarios.
//
// 3. Section 87A rebate: full tax up to 7L taxable (new), up to 12,500 at or below
//    5L taxable (old). Marginal relief is not modelled.
//
// 4. Health and education cess: 4% of net tax. Surcharge is not modelled.

// Deduction section keys understood by DeductionCaps
const (
	Section80C       = "80C"
	Section80CCD1B   = "80CCD1B"
	Section80D       = "80D"
	Section80DSenior = "80D_SENIOR"
	Section24B       = "24B"
)

// DefaultRules returns the built-in FY 2023-24 rules
func DefaultRules() domain.TaxRules {
	return domain.TaxRules{
		FinancialYear:              "2023-24",
		StandardDeduction:          decimal.NewFromInt(50000),
		StandardDeductionThreshold: decimal.NewFromInt(50000),
		NewRegimeRebate: domain.RebateRule{
			IncomeLimit: decimal.NewFromInt(700000),
			Full:        true,
		},
		OldRegimeRebate: domain.RebateRule{
			IncomeLimit: decimal.NewFromInt(500000),
			Cap:         decimal.NewFromInt(12500),
		},
		CessRate:       decimal.NewFromFloat(0.04),
		NewRegimeSlabs: DefaultNewRegimeSlabs(),
		OldRegimeSlabs: map[domain.AgeBracket]domain.SlabTable{
			domain.AgeNormal:      DefaultOldRegimeSlabs(domain.AgeNormal),
			domain.AgeSenior:      DefaultOldRegimeSlabs(domain.AgeSenior),
			domain.AgeSuperSenior: DefaultOldRegimeSlabs(domain.AgeSuperSenior),
		},
		DeductionCaps: map[string]decimal.Decimal{
			Section80C:       decimal.NewFromInt(150000),
			Section80CCD1B:   decimal.NewFromInt(50000),
			Section80D:       decimal.NewFromInt(25000),
			Section80DSenior: decimal.NewFromInt(50000),
			Section24B:       decimal.NewFromInt(200000),
		},
	}
}

// DefaultNewRegimeSlabs returns the six-bracket new regime schedule
func DefaultNewRegimeSlabs() domain.SlabTable {
	return domain.SlabTable{
		{UpperBound: decimal.NewFromInt(300000), Rate: decimal.Zero},
		{UpperBound: decimal.NewFromInt(600000), Rate: decimal.NewFromFloat(0.05)},
		{UpperBound: decimal.NewFromInt(900000), Rate: decimal.NewFromFloat(0.10)},
		{UpperBound: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
		{UpperBound: decimal.NewFromInt(1500000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.30), Unbounded: true},
	}
}

// DefaultOldRegimeSlabs returns the old regime schedule for an age bracket.
// For super seniors the exemption limit equals the 5% slab's upper bound, so that
// zero-width slab is left out.
func DefaultOldRegimeSlabs(age domain.AgeBracket) domain.SlabTable {
	exempt := decimal.NewFromInt(250000)
	switch age {
	case domain.AgeSenior:
		exempt = decimal.NewFromInt(300000)
	case domain.AgeSuperSenior:
		exempt = decimal.NewFromInt(500000)
	}

	fivePctTop := decimal.NewFromInt(500000)
	table := domain.SlabTable{{UpperBound: exempt, Rate: decimal.Zero}}
	if exempt.LessThan(fivePctTop) {
		table = append(table, domain.TaxSlab{UpperBound: fivePctTop, Rate: decimal.NewFromFloat(0.05)})
	}
	return append(table,
		domain.TaxSlab{UpperBound: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.20)},
		domain.TaxSlab{Rate: decimal.NewFromFloat(0.30), Unbounded: true},
	)
}
