package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer and rule files
type InputParser struct {
	// BaseRules is the rule set that file overrides are merged onto
	BaseRules domain.TaxRules

	validate *validator.Validate
}

// NewInputParser creates an input parser over the built-in rules
func NewInputParser() *InputParser {
	return NewInputParserWithRules(calculation.DefaultRules())
}

// NewInputParserWithRules creates an input parser that merges overrides onto base
func NewInputParserWithRules(base domain.TaxRules) *InputParser {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &InputParser{BaseRules: base, validate: v}
}

// decimalValue lets numeric validator tags (gte, lte) apply to decimal fields
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// LoadFromFile loads a configuration of taxpayer profiles from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration YAML. A rules block is merged onto
// BaseRules: scalars and maps entries override, slab lists replace.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	rules := ip.BaseRules.Clone()
	config := domain.Configuration{Rules: &rules}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.Rules == nil {
		// an explicit "rules: null" clears the pointer
		config.Rules = &rules
	}
	normalizeRules(config.Rules)
	if config.FinancialYear == "" {
		config.FinancialYear = config.Rules.FinancialYear
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// LoadRules reads a rules file and merges it onto BaseRules
func (ip *InputParser) LoadRules(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}

	rules := ip.BaseRules.Clone()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	normalizeRules(&rules)
	if err := rules.Validate(); err != nil {
		return domain.TaxRules{}, fmt.Errorf("invalid rules in %s: %w", filename, err)
	}
	return rules, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validate.Struct(config); err != nil {
		return describeValidation(err)
	}

	seen := make(map[string]bool, len(config.Profiles))
	for i := range config.Profiles {
		p := &config.Profiles[i]
		if err := ip.validateProfile(p); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, p.Name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("profile %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}

	if config.Rules != nil {
		if err := config.Rules.Validate(); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.TaxProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.GrossIncome.IsNegative() {
		return fmt.Errorf("gross income cannot be negative")
	}
	for _, section := range p.DeductionSections() {
		if p.Deductions[section].IsNegative() {
			return fmt.Errorf("deduction %s cannot be negative", section)
		}
	}
	if p.AgeBracket != "" && !p.AgeBracket.Valid() {
		return fmt.Errorf("unknown age bracket %q", p.AgeBracket)
	}
	if p.AgeBracket != "" && p.Age != nil && domain.AgeBracketForAge(*p.Age) != p.AgeBracket {
		return fmt.Errorf("age %d does not fall in bracket %s", *p.Age, p.AgeBracket)
	}
	if p.Regime != "" && !p.Regime.Valid() {
		return fmt.Errorf("unknown regime %q", p.Regime)
	}
	return nil
}

// normalizeRules marks a final slab with no upper bound as unbounded
func normalizeRules(rules *domain.TaxRules) {
	rules.NewRegimeSlabs = normalizeSlabs(rules.NewRegimeSlabs)
	for age, st := range rules.OldRegimeSlabs {
		rules.OldRegimeSlabs[age] = normalizeSlabs(st)
	}
}

func normalizeSlabs(st domain.SlabTable) domain.SlabTable {
	if n := len(st); n > 0 && !st[n-1].Unbounded && st[n-1].UpperBound.IsZero() {
		st[n-1].Unbounded = true
	}
	return st
}

func describeValidation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Configuration.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" needs at least "+fe.Param()+" entry")
		case "gte":
			msgs = append(msgs, field+" cannot be below "+fe.Param())
		case "lte":
			msgs = append(msgs, field+" cannot exceed "+fe.Param())
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
