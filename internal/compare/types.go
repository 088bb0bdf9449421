package compare

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one profile's regime comparison plus its deltas from the base
type ComparisonResult struct {
	ProfileName string                  `json:"profileName"`
	Description string                  `json:"description,omitempty"`
	Comparison  domain.RegimeComparison `json:"comparison"`

	// Key Metrics
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	OldTax          decimal.Decimal `json:"oldTax"`
	NewTax          decimal.Decimal `json:"newTax"`
	BestRegime      domain.Regime   `json:"bestRegime"`
	BestTax         decimal.Decimal `json:"bestTax"`
	RegimeSavings   decimal.Decimal `json:"regimeSavings"`

	// Comparison to Base
	IncomeDiffFromBase decimal.Decimal `json:"incomeDiffFromBase"`
	TaxDiffFromBase    decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase     decimal.Decimal `json:"taxPctFromBase"`
	RegimeChanged      bool            `json:"regimeChanged,omitempty"`
}

// ComparisonSet represents a base profile and the alternatives measured against it
type ComparisonSet struct {
	BaseProfileName    string             `json:"baseProfileName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToReport converts a ComparisonSet into an output.Report for the generic formatters
func (cs *ComparisonSet) ToReport(financialYear string) *output.Report {
	comparisons := make([]domain.RegimeComparison, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		comparisons = append(comparisons, cs.BaseResult.Comparison)
	}
	for _, alt := range cs.AlternativeResults {
		comparisons = append(comparisons, alt.Comparison)
	}
	return output.NewReport(financialYear, comparisons...)
}

// MetricsCalculator extracts key metrics from regime comparisons
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics summarises the comparison for a profile
func (mc *MetricsCalculator) CalculateMetrics(profile *domain.TaxProfile, cmp domain.RegimeComparison) ComparisonResult {
	best := cmp.Recommended()
	return ComparisonResult{
		ProfileName:     profile.Name,
		Description:     profile.Description,
		Comparison:      cmp,
		GrossIncome:     profile.GrossIncome,
		TotalDeductions: profile.TotalDeductions(),
		OldTax:          cmp.OldResult.TotalTax,
		NewTax:          cmp.NewResult.TotalTax,
		BestRegime:      cmp.RecommendedRegime,
		BestTax:         best.TotalTax,
		RegimeSavings:   cmp.AbsoluteSavings,
	}
}

// CalculateComparison fills the deltas of an alternative against the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.IncomeDiffFromBase = alt.GrossIncome.Sub(base.GrossIncome)
	alt.TaxDiffFromBase = alt.BestTax.Sub(base.BestTax)
	if !base.BestTax.IsZero() {
		alt.TaxPctFromBase = alt.TaxDiffFromBase.Div(base.BestTax).Mul(decimal.NewFromInt(100))
	}
	alt.RegimeChanged = alt.BestRegime != base.BestRegime
	return alt
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	recommendations = append(recommendations,
		fmt.Sprintf("Base: %s is cheaper for %s by %s", base.BestRegime.Label(), base.ProfileName, output.FormatINR(base.RegimeSavings)))

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Lowest tax among alternatives that keep income equal to base
	var lowest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.IncomeDiffFromBase.IsZero() {
			continue
		}
		if alt.BestTax.LessThan(base.BestTax) && (lowest == nil || alt.BestTax.LessThan(lowest.BestTax)) {
			lowest = alt
		}
	}
	if lowest != nil {
		recommendations = append(recommendations,
			"Lowest Tax: "+lowest.ProfileName+" saves "+output.FormatINR(base.BestTax.Sub(lowest.BestTax))+
				" compared with the base")
	}

	// Largest gap between the two regimes
	widest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].RegimeSavings.GreaterThan(widest.RegimeSavings) {
			widest = &compSet.AlternativeResults[i]
		}
	}
	if widest != base {
		recommendations = append(recommendations,
			"Largest Regime Gap: "+widest.ProfileName+" pays "+output.FormatINR(widest.RegimeSavings)+
				" less under the "+widest.BestRegime.Label())
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.RegimeChanged {
			recommendations = append(recommendations,
				fmt.Sprintf("Regime Switch: under %s the %s becomes cheaper", alt.ProfileName, alt.BestRegime.Label()))
		}
	}

	return recommendations
}
