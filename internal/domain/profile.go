package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DeductionTotalKey holds a deduction given as a single scalar instead of by section
const DeductionTotalKey = "total"

// SectionKey canonicalises a deduction section name: "80c " becomes "80C" and any
// spelling of "total" becomes DeductionTotalKey
func SectionKey(section string) string {
	key := strings.ToUpper(strings.TrimSpace(section))
	if key == strings.ToUpper(DeductionTotalKey) {
		return DeductionTotalKey
	}
	return key
}

// DeductionSet maps a deduction section (80C, 80D, ...) to the amount claimed
type DeductionSet map[string]decimal.Decimal

// UnmarshalYAML accepts either a section map or a single scalar total. Section keys
// are canonicalised with SectionKey; keys that differ only in case are summed.
func (ds *DeductionSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var total decimal.Decimal
		if err := node.Decode(&total); err != nil {
			return fmt.Errorf("deductions: %w", err)
		}
		*ds = DeductionSet{DeductionTotalKey: total}
		return nil
	case yaml.MappingNode:
		m := map[string]decimal.Decimal{}
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("deductions: %w", err)
		}
		out := make(DeductionSet, len(m))
		for section, amt := range m {
			key := SectionKey(section)
			out[key] = out[key].Add(amt)
		}
		*ds = out
		return nil
	}
	return fmt.Errorf("deductions must be a number or a map of section amounts (line %d)", node.Line)
}

// TaxProfile describes one taxpayer as entered in a configuration file
type TaxProfile struct {
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"grossIncome" validate:"gte=0"`
	Deductions  DeductionSet    `yaml:"deductions,omitempty" json:"deductions,omitempty" validate:"omitempty,dive,gte=0"`
	Age         *int            `yaml:"age,omitempty" json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	AgeBracket  AgeBracket      `yaml:"age_bracket,omitempty" json:"ageBracket,omitempty" validate:"omitempty,oneof=normal senior super_senior"`
	Regime      Regime          `yaml:"regime,omitempty" json:"regime,omitempty" validate:"omitempty,oneof=old new"`
}

// TotalDeductions sums all declared deduction sections
func (p TaxProfile) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range p.Deductions {
		total = total.Add(amt)
	}
	return total
}

// DeductionSections returns the declared section names in sorted order
func (p TaxProfile) DeductionSections() []string {
	names := make([]string, 0, len(p.Deductions))
	for name := range p.Deductions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bracket resolves the age bracket: an explicit bracket wins, then age, then normal
func (p TaxProfile) Bracket() AgeBracket {
	if p.AgeBracket != "" {
		return p.AgeBracket
	}
	if p.Age != nil {
		return AgeBracketForAge(*p.Age)
	}
	return AgeNormal
}

// DeepCopy returns a copy whose maps and pointers are not shared with p
func (p TaxProfile) DeepCopy() TaxProfile {
	out := p
	if p.Deductions != nil {
		out.Deductions = make(DeductionSet, len(p.Deductions))
		for k, v := range p.Deductions {
			out.Deductions[k] = v
		}
	}
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	return out
}

// Configuration is the complete input file: optional rule overrides and taxpayer profiles
type Configuration struct {
	FinancialYear string       `yaml:"financial_year,omitempty" json:"financialYear,omitempty"`
	Rules         *TaxRules    `yaml:"rules,omitempty" json:"rules,omitempty"`
	Profiles      []TaxProfile `yaml:"profiles" json:"profiles" validate:"required,min=1,dive"`
}

// Profile looks up a profile by name
func (c *Configuration) Profile(name string) (*TaxProfile, bool) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

// ProfileNames lists profile names in file order
func (c *Configuration) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		names = append(names, p.Name)
	}
	return names
}
