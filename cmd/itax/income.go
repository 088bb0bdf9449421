package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/domain"
)

// incomeFlags are the taxpayer inputs shared by compute, compare and save
type incomeFlags struct {
	name       string
	income     string
	deductions string
	sections   []string
	age        int
	bracket    string
}

func (f *incomeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.income, "income", "", "Gross annual income, e.g. 1500000, 15,00,000 or 15L (required)")
	cmd.Flags().StringVar(&f.deductions, "deductions", "", "Total old-regime deductions")
	cmd.Flags().StringArrayVar(&f.sections, "section", nil, "Deduction by section, e.g. 80C=150000 (repeatable)")
	cmd.Flags().IntVar(&f.age, "age", -1, "Age in years; selects the old-regime slab table")
	cmd.Flags().StringVar(&f.bracket, "bracket", "", "Age bracket (normal, senior, super_senior)")
	_ = cmd.MarkFlagRequired("income")
}

// profile builds and validates a taxpayer profile from the flags
func (f *incomeFlags) profile(cmd *cobra.Command, a *app) (domain.TaxProfile, error) {
	p := domain.TaxProfile{Name: f.name}
	if p.Name == "" {
		p.Name = "cli"
	}

	gross, err := domain.ParseAmount(f.income)
	if err != nil {
		return p, fmt.Errorf("--income: %w", err)
	}
	p.GrossIncome = gross

	deductions := domain.DeductionSet{}
	if f.deductions != "" {
		total, err := domain.ParseAmount(f.deductions)
		if err != nil {
			return p, fmt.Errorf("--deductions: %w", err)
		}
		deductions[domain.DeductionTotalKey] = total
	}
	for _, s := range f.sections {
		section, amount, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(section) == "" {
			return p, fmt.Errorf("--section %q: expected SECTION=AMOUNT", s)
		}
		v, err := domain.ParseAmount(amount)
		if err != nil {
			return p, fmt.Errorf("--section %s: %w", section, err)
		}
		key := domain.SectionKey(section)
		deductions[key] = deductions[key].Add(v)
	}
	if len(deductions) > 0 {
		p.Deductions = deductions
	}

	if cmd.Flags().Changed("age") {
		age := f.age
		p.Age = &age
	}
	if f.bracket != "" {
		bracket, err := domain.ParseAgeBracket(f.bracket)
		if err != nil {
			return p, fmt.Errorf("--bracket: %w", err)
		}
		p.AgeBracket = bracket
	}

	cfg := &domain.Configuration{Profiles: []domain.TaxProfile{p}}
	if err := a.parser.ValidateConfiguration(cfg); err != nil {
		return p, err
	}
	return p, nil
}
