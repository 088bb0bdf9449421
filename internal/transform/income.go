package transform

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustIncome adds Delta (which may be negative) to gross income
type AdjustIncome struct {
	Delta decimal.Decimal
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	if ai.Delta.IsNegative() {
		return fmt.Sprintf("Reduce gross income by %s", ai.Delta.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Increase gross income by %s", ai.Delta.StringFixed(0))
}

func (ai *AdjustIncome) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(ai.Name(), "validate", "base profile cannot be nil", nil)
	}
	if base.GrossIncome.Add(ai.Delta).IsNegative() {
		return NewTransformError(ai.Name(), "validate",
			fmt.Sprintf("income would become negative (%s)", base.GrossIncome.Add(ai.Delta)), nil)
	}
	return nil
}

func (ai *AdjustIncome) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	modified := base.DeepCopy()
	modified.GrossIncome = modified.GrossIncome.Add(ai.Delta)
	return &modified, nil
}

// ScaleIncome multiplies gross income by Factor (1.10 for a 10% raise)
type ScaleIncome struct {
	Factor decimal.Decimal
}

func (si *ScaleIncome) Name() string {
	return "scale_income"
}

func (si *ScaleIncome) Description() string {
	pct := si.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Change gross income by %s%%", pct.StringFixed(1))
}

func (si *ScaleIncome) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base profile cannot be nil", nil)
	}
	if si.Factor.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", si.Factor), nil)
	}
	return nil
}

func (si *ScaleIncome) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	modified := base.DeepCopy()
	modified.GrossIncome = modified.GrossIncome.Mul(si.Factor)
	return &modified, nil
}

// SetAgeBracket overrides the taxpayer's age bracket
type SetAgeBracket struct {
	Bracket domain.AgeBracket
}

func (sa *SetAgeBracket) Name() string {
	return "set_age_bracket"
}

func (sa *SetAgeBracket) Description() string {
	return fmt.Sprintf("Treat taxpayer as %s", sa.Bracket.Label())
}

func (sa *SetAgeBracket) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(sa.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !sa.Bracket.Valid() {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("unknown age bracket %q", sa.Bracket), nil)
	}
	return nil
}

func (sa *SetAgeBracket) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	modified := base.DeepCopy()
	modified.AgeBracket = sa.Bracket
	// an explicit age would contradict the new bracket
	modified.Age = nil
	return &modified, nil
}
