package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTemplate looks up a template by name and applies it to base
func (tr *TemplateRegistry) ApplyTemplate(base *domain.TaxProfile, name string) (*domain.TaxProfile, error) {
	t, ok := tr.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown template: %s (available: %s)", name, strings.Join(tr.List(), ", "))
	}
	out, err := ApplyTransforms(base, t.Transforms)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}
	out.Name = base.Name + " + " + t.Name
	return out, nil
}

// CreateBuiltInTemplates creates a registry with the common tax-planning moves.
// caps supplies the section limits the deduction templates fill up to.
func CreateBuiltInTemplates(caps Caps) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest the full 80C limit (PPF, ELSS, life insurance)",
		Transforms:  []ProfileTransform{&MaxDeduction{Section: "80C", Caps: caps}},
	})

	registry.Register(Template{
		Name:        "nps_top_up",
		Description: "Contribute the additional NPS limit under 80CCD(1B)",
		Transforms:  []ProfileTransform{&MaxDeduction{Section: "80CCD1B", Caps: caps}},
	})

	registry.Register(Template{
		Name:        "health_cover",
		Description: "Buy health insurance up to the 80D limit",
		Transforms:  []ProfileTransform{&MaxDeduction{Section: "80D", Caps: caps}},
	})

	registry.Register(Template{
		Name:        "home_loan_interest",
		Description: "Claim home loan interest up to the 24(b) limit",
		Transforms:  []ProfileTransform{&MaxDeduction{Section: "24B", Caps: caps}},
	})

	registry.Register(Template{
		Name:        "max_all",
		Description: "Fill every capped section",
		Transforms: []ProfileTransform{
			&MaxDeduction{Section: "80C", Caps: caps},
			&MaxDeduction{Section: "80CCD1B", Caps: caps},
			&MaxDeduction{Section: "80D", Caps: caps},
			&MaxDeduction{Section: "24B", Caps: caps},
		},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Gross income rises by 10%",
		Transforms:  []ProfileTransform{&ScaleIncome{Factor: decimal.RequireFromString("1.10")}},
	})

	registry.Register(Template{
		Name:        "turn_senior",
		Description: "Taxpayer turns 60",
		Transforms:  []ProfileTransform{&SetAgeBracket{Bracket: domain.AgeSenior}},
	})

	return registry
}
