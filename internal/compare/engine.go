package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/transform"
)

// CompareEngine orchestrates multi-profile and what-if comparison
type CompareEngine struct {
	Engine            *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a comparison engine whose templates use the engine's deduction caps
func NewCompareEngine(engine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(transform.Caps(engine.Rules.DeductionCaps)),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseProfileName string   // Name of the base profile to compare against
	Templates       []string // What-if templates applied to the base
}

// CompareAll compares regimes for every profile in file order
func (ce *CompareEngine) CompareAll(ctx context.Context, config *domain.Configuration) ([]domain.RegimeComparison, error) {
	results := make([]domain.RegimeComparison, 0, len(config.Profiles))
	for _, p := range config.Profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, ce.Engine.CompareProfile(p))
	}
	return results, nil
}

// CompareTemplates applies what-if templates to the base profile and measures each
// against it
func (ce *CompareEngine) CompareTemplates(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	base, ok := config.Profile(options.BaseProfileName)
	if !ok {
		return nil, fmt.Errorf("base profile %s not found in configuration", options.BaseProfileName)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(base, ce.Engine.CompareProfile(*base))

	alternatives := []ComparisonResult{}
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := ce.TemplateRegistry.ApplyTemplate(base, templateName)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(modified, ce.Engine.CompareProfile(*modified))
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseProfileName:    options.BaseProfileName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareProfiles compares explicit profiles (not using templates) against a base.
// With no alternatives named, every other profile in the configuration is used.
func (ce *CompareEngine) CompareProfiles(
	ctx context.Context,
	config *domain.Configuration,
	baseProfileName string,
	alternativeNames []string,
) (*ComparisonSet, error) {

	base, ok := config.Profile(baseProfileName)
	if !ok {
		return nil, fmt.Errorf("base profile %s not found", baseProfileName)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base, ce.Engine.CompareProfile(*base))

	if len(alternativeNames) == 0 {
		for _, name := range config.ProfileNames() {
			if name != baseProfileName {
				alternativeNames = append(alternativeNames, name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		alt, ok := config.Profile(altName)
		if !ok {
			return nil, fmt.Errorf("alternative profile %s not found", altName)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt, ce.Engine.CompareProfile(*alt))
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseProfileName:    baseProfileName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
