package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules contains all rate and threshold data used by the tax engine.
// It is loaded from rules.yaml or taken from calculation.DefaultRules and passed
// into computations explicitly.
type TaxRules struct {
	FinancialYear              string                     `yaml:"financial_year" json:"financialYear"`
	StandardDeduction          decimal.Decimal            `yaml:"standard_deduction" json:"standardDeduction"`
	StandardDeductionThreshold decimal.Decimal            `yaml:"standard_deduction_threshold" json:"standardDeductionThreshold"`
	NewRegimeRebate            RebateRule                 `yaml:"new_regime_rebate" json:"newRegimeRebate"`
	OldRegimeRebate            RebateRule                 `yaml:"old_regime_rebate" json:"oldRegimeRebate"`
	CessRate                   decimal.Decimal            `yaml:"cess_rate" json:"cessRate"`
	NewRegimeSlabs             SlabTable                  `yaml:"new_regime_slabs" json:"newRegimeSlabs"`
	OldRegimeSlabs             map[AgeBracket]SlabTable   `yaml:"old_regime_slabs" json:"oldRegimeSlabs"`
	DeductionCaps              map[string]decimal.Decimal `yaml:"deduction_caps,omitempty" json:"deductionCaps,omitempty"`
}

// RebateRule describes a rebate available at or below IncomeLimit of taxable income.
// Full forgives the whole computed tax; otherwise the rebate is capped at Cap.
type RebateRule struct {
	IncomeLimit decimal.Decimal `yaml:"income_limit" json:"incomeLimit"`
	Full        bool            `yaml:"full,omitempty" json:"full,omitempty"`
	Cap         decimal.Decimal `yaml:"cap,omitempty" json:"cap,omitempty"`
}

// Amount returns the rebate for the given taxable income and gross tax
func (rr RebateRule) Amount(taxable, grossTax decimal.Decimal) decimal.Decimal {
	if taxable.GreaterThan(rr.IncomeLimit) {
		return decimal.Zero
	}
	if rr.Full {
		return grossTax
	}
	return decimal.Min(grossTax, rr.Cap)
}

// SlabsFor selects the slab table for a regime and age bracket.
// The new regime ignores age; an unknown bracket falls back to normal.
func (tr TaxRules) SlabsFor(regime Regime, age AgeBracket) SlabTable {
	if regime == RegimeNew {
		return tr.NewRegimeSlabs
	}
	if st, ok := tr.OldRegimeSlabs[age]; ok {
		return st
	}
	return tr.OldRegimeSlabs[AgeNormal]
}

// RebateFor returns the rebate rule of a regime
func (tr TaxRules) RebateFor(regime Regime) RebateRule {
	if regime == RegimeNew {
		return tr.NewRegimeRebate
	}
	return tr.OldRegimeRebate
}

// Validate checks every slab table and the scalar parameters
func (tr TaxRules) Validate() error {
	if tr.StandardDeduction.IsNegative() {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	if tr.StandardDeductionThreshold.IsNegative() {
		return fmt.Errorf("standard deduction threshold cannot be negative")
	}
	if tr.CessRate.IsNegative() || tr.CessRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("cess rate %s outside [0,1]", tr.CessRate.String())
	}
	if err := tr.NewRegimeSlabs.Validate(); err != nil {
		return fmt.Errorf("new regime slabs: %w", err)
	}
	for _, age := range []AgeBracket{AgeNormal, AgeSenior, AgeSuperSenior} {
		st, ok := tr.OldRegimeSlabs[age]
		if !ok {
			return fmt.Errorf("old regime slabs missing for %s", age)
		}
		if err := st.Validate(); err != nil {
			return fmt.Errorf("old regime slabs (%s): %w", age, err)
		}
	}
	for _, rr := range []RebateRule{tr.NewRegimeRebate, tr.OldRegimeRebate} {
		if rr.IncomeLimit.IsNegative() || rr.Cap.IsNegative() {
			return fmt.Errorf("rebate amounts cannot be negative")
		}
	}
	return nil
}

// Clone returns a deep copy so that callers can overlay values without touching tr
func (tr TaxRules) Clone() TaxRules {
	out := tr
	out.NewRegimeSlabs = tr.NewRegimeSlabs.Clone()
	if tr.OldRegimeSlabs != nil {
		out.OldRegimeSlabs = make(map[AgeBracket]SlabTable, len(tr.OldRegimeSlabs))
		for k, v := range tr.OldRegimeSlabs {
			out.OldRegimeSlabs[k] = v.Clone()
		}
	}
	if tr.DeductionCaps != nil {
		out.DeductionCaps = make(map[string]decimal.Decimal, len(tr.DeductionCaps))
		for k, v := range tr.DeductionCaps {
			out.DeductionCaps[k] = v
		}
	}
	return out
}
