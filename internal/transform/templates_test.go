package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ProfileTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(defaultCaps())

	expected := []string{"health_cover", "home_loan_interest", "max_80c", "max_all", "nps_top_up", "raise_10pct", "turn_senior"}
	names := registry.List()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Fatalf("Expected templates %v, got %v", expected, names)
	}

	for _, name := range names {
		tmpl, _ := registry.Get(name)
		if tmpl.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
		if len(tmpl.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates(defaultCaps())
	base := &domain.TaxProfile{
		Name:        "asha",
		GrossIncome: decimal.NewFromInt(1500000),
		AgeBracket:  domain.AgeSenior,
	}

	out, err := registry.ApplyTemplate(base, "max_all")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Name != "asha + max_all" {
		t.Errorf("Expected derived name, got %s", out.Name)
	}
	// 1,50,000 + 50,000 + 50,000 (senior 80D) + 2,00,000
	if !out.TotalDeductions().Equal(decimal.NewFromInt(450000)) {
		t.Errorf("Expected total deductions 450000, got %s", out.TotalDeductions())
	}
	if len(base.Deductions) != 0 {
		t.Error("Base profile must not be modified")
	}

	raised, err := registry.ApplyTemplate(base, "RAISE_10PCT")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !raised.GrossIncome.Equal(decimal.NewFromInt(1650000)) {
		t.Errorf("Expected 1650000, got %s", raised.GrossIncome)
	}

	if _, err := registry.ApplyTemplate(base, "retire_early"); err == nil || !strings.Contains(err.Error(), "available:") {
		t.Errorf("Expected unknown template error listing choices, got %v", err)
	}
}
