package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Caps maps a deduction section to its statutory ceiling. A "<section>_SENIOR" entry,
// when present, replaces the ceiling for senior and super senior taxpayers.
type Caps map[string]decimal.Decimal

// For returns the ceiling of a section for an age bracket
func (c Caps) For(section string, age domain.AgeBracket) (decimal.Decimal, bool) {
	key := domain.SectionKey(section)
	if age != domain.AgeNormal {
		if limit, ok := c[key+"_SENIOR"]; ok {
			return limit, true
		}
	}
	limit, ok := c[key]
	return limit, ok
}

// AddDeduction raises the amount claimed under one section. A claim that would pass
// the section's cap is rejected.
type AddDeduction struct {
	Section string
	Amount  decimal.Decimal
	Caps    Caps
}

func (ad *AddDeduction) Name() string {
	return "add_deduction"
}

func (ad *AddDeduction) Description() string {
	return fmt.Sprintf("Claim %s more under section %s", ad.Amount.StringFixed(0), ad.Section)
}

func (ad *AddDeduction) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(ad.Name(), "validate", "base profile cannot be nil", nil)
	}
	if strings.TrimSpace(ad.Section) == "" {
		return NewTransformError(ad.Name(), "validate", "section cannot be empty", nil)
	}
	if !ad.Amount.IsPositive() {
		return NewTransformError(ad.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", ad.Amount), nil)
	}
	return ad.checkCap(base, "validate")
}

func (ad *AddDeduction) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	if err := ad.checkCap(base, "apply"); err != nil {
		return nil, err
	}

	modified := base.DeepCopy()
	if modified.Deductions == nil {
		modified.Deductions = domain.DeductionSet{}
	}
	section := domain.SectionKey(ad.Section)
	modified.Deductions[section] = modified.Deductions[section].Add(ad.Amount)

	return &modified, nil
}

// checkCap fails when the existing claim plus Amount passes the section cap
func (ad *AddDeduction) checkCap(base *domain.TaxProfile, operation string) error {
	section := domain.SectionKey(ad.Section)
	limit, ok := ad.Caps.For(section, base.Bracket())
	if !ok {
		return nil
	}
	if claim := base.Deductions[section].Add(ad.Amount); claim.GreaterThan(limit) {
		return NewTransformError(ad.Name(), operation,
			fmt.Sprintf("claim of %s under %s exceeds the %s limit", claim.StringFixed(0), section, limit.StringFixed(0)), nil)
	}
	return nil
}

// MaxDeduction claims the full cap of a section
type MaxDeduction struct {
	Section string
	Caps    Caps
}

func (md *MaxDeduction) Name() string {
	return "max_deduction"
}

func (md *MaxDeduction) Description() string {
	return fmt.Sprintf("Claim the full limit under section %s", md.Section)
}

func (md *MaxDeduction) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(md.Name(), "validate", "base profile cannot be nil", nil)
	}
	if _, ok := md.Caps.For(md.Section, base.Bracket()); !ok {
		return NewTransformError(md.Name(), "validate", fmt.Sprintf("section %q has no known limit", md.Section), nil)
	}
	return nil
}

func (md *MaxDeduction) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	modified := base.DeepCopy()
	if modified.Deductions == nil {
		modified.Deductions = domain.DeductionSet{}
	}

	section := domain.SectionKey(md.Section)
	limit, _ := md.Caps.For(section, modified.Bracket())
	if modified.Deductions[section].LessThan(limit) {
		modified.Deductions[section] = limit
	}

	return &modified, nil
}

// RemoveDeduction drops a section entirely
type RemoveDeduction struct {
	Section string
}

func (rd *RemoveDeduction) Name() string {
	return "remove_deduction"
}

func (rd *RemoveDeduction) Description() string {
	return fmt.Sprintf("Stop claiming section %s", rd.Section)
}

func (rd *RemoveDeduction) Validate(base *domain.TaxProfile) error {
	if base == nil {
		return NewTransformError(rd.Name(), "validate", "base profile cannot be nil", nil)
	}
	if _, ok := base.Deductions[domain.SectionKey(rd.Section)]; !ok {
		return NewTransformError(rd.Name(), "validate", fmt.Sprintf("section %s is not claimed", rd.Section), nil)
	}
	return nil
}

func (rd *RemoveDeduction) Apply(base *domain.TaxProfile) (*domain.TaxProfile, error) {
	modified := base.DeepCopy()
	delete(modified.Deductions, domain.SectionKey(rd.Section))
	return &modified, nil
}
