package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *domain.Configuration {
	return &domain.Configuration{
		FinancialYear: "2023-24",
		Profiles: []domain.TaxProfile{
			{
				Name:        "investor",
				GrossIncome: decimal.NewFromInt(1000000),
				Deductions:  domain.DeductionSet{"80C": decimal.NewFromInt(100000)},
			},
			{
				Name:        "salaried",
				GrossIncome: decimal.NewFromInt(1500000),
			},
			{
				Name:        "student",
				GrossIncome: decimal.NewFromInt(400000),
			},
		},
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCompareTemplates(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.CompareTemplates(context.Background(), testConfig(), CompareOptions{
		BaseProfileName: "investor",
		Templates:       []string{"max_80c", "max_all", "raise_10pct"},
	})
	require.NoError(t, err)

	base := set.BaseResult
	require.NotNil(t, base)
	requireDecimal(t, "85800", base.OldTax)
	requireDecimal(t, "54600", base.NewTax)
	assert.Equal(t, domain.RegimeNew, base.BestRegime)

	require.Len(t, set.AlternativeResults, 3)

	max80c := set.AlternativeResults[0]
	assert.Equal(t, "investor + max_80c", max80c.ProfileName)
	requireDecimal(t, "75400", max80c.OldTax)
	requireDecimal(t, "0", max80c.TaxDiffFromBase)
	assert.False(t, max80c.RegimeChanged)

	maxAll := set.AlternativeResults[1]
	requireDecimal(t, "425000", maxAll.TotalDeductions)
	requireDecimal(t, "18200", maxAll.BestTax)
	requireDecimal(t, "-36400", maxAll.TaxDiffFromBase)
	assert.Equal(t, "-66.67", maxAll.TaxPctFromBase.StringFixed(2))
	assert.True(t, maxAll.RegimeChanged)
	assert.NotEmpty(t, maxAll.Description)

	raise := set.AlternativeResults[2]
	requireDecimal(t, "100000", raise.IncomeDiffFromBase)
	requireDecimal(t, "70200", raise.BestTax)
	requireDecimal(t, "15600", raise.TaxDiffFromBase)

	assert.Equal(t, []string{
		"Base: New Regime is cheaper for investor by ₹31,200.00",
		"Lowest Tax: investor + max_all saves ₹36,400.00 compared with the base",
		"Largest Regime Gap: investor + max_all pays ₹36,400.00 less under the Old Regime",
		"Regime Switch: under investor + max_all the Old Regime becomes cheaper",
	}, set.Recommendations)
}

func TestCompareTemplates_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	_, err := ce.CompareTemplates(context.Background(), testConfig(), CompareOptions{BaseProfileName: "ghost"})
	assert.ErrorContains(t, err, "base profile ghost not found")

	_, err = ce.CompareTemplates(context.Background(), testConfig(), CompareOptions{BaseProfileName: "investor", Templates: []string{"retire"}})
	assert.ErrorContains(t, err, "template retire not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.CompareTemplates(ctx, testConfig(), CompareOptions{BaseProfileName: "investor", Templates: []string{"max_80c"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareProfiles(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.CompareProfiles(context.Background(), testConfig(), "salaried", nil)
	require.NoError(t, err)

	requireDecimal(t, "145600", set.BaseResult.BestTax)
	require.Len(t, set.AlternativeResults, 2)
	assert.Equal(t, "investor", set.AlternativeResults[0].ProfileName)
	assert.Equal(t, "student", set.AlternativeResults[1].ProfileName)
	requireDecimal(t, "-500000", set.AlternativeResults[0].IncomeDiffFromBase)
	requireDecimal(t, "0", set.AlternativeResults[1].BestTax)

	// income differs for every alternative, so no "Lowest Tax" line
	for _, rec := range set.Recommendations {
		assert.NotContains(t, rec, "Lowest Tax")
	}

	_, err = ce.CompareProfiles(context.Background(), testConfig(), "salaried", []string{"ghost"})
	assert.ErrorContains(t, err, "alternative profile ghost not found")
}

func TestCompareAll(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	results, err := ce.CompareAll(context.Background(), testConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "investor", results[0].Name)
	requireDecimal(t, "145600", results[1].NewResult.TotalTax)
	assert.Equal(t, domain.RegimeNew, results[2].RecommendedRegime, "tie at zero favours new")
}

func TestGenerateRecommendations_NoBase(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}

func TestComparisonSet_ToReport(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())
	set, err := ce.CompareTemplates(context.Background(), testConfig(), CompareOptions{
		BaseProfileName: "investor",
		Templates:       []string{"max_80c"},
	})
	require.NoError(t, err)

	report := set.ToReport("2023-24")
	assert.Equal(t, "2023-24", report.FinancialYear)
	require.Len(t, report.Comparisons, 2)
	assert.Equal(t, "investor", report.Comparisons[0].Name)
	assert.Equal(t, "investor + max_80c", report.Comparisons[1].Name)

	assert.Empty(t, (&ComparisonSet{}).ToReport("x").Comparisons)
}
