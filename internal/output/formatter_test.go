package output

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport() *Report {
	rules := calculation.DefaultRules()
	a := calculation.CompareRegimesWithRules(decimal.NewFromInt(1500000), decimal.Zero, domain.AgeNormal, rules)
	a.Name = "A"
	b := calculation.CompareRegimesWithRules(decimal.NewFromInt(1000000), decimal.NewFromInt(400000), domain.AgeNormal, rules)
	b.Name = "B"
	return NewReport(rules.FinancialYear, a, b)
}

func TestFormatterFunc(t *testing.T) {
	var received *Report
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			received = r
			return []byte("test output"), nil
		},
	}

	report := buildTestReport()
	out, err := f.Format(report)

	assert.NoError(t, err)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Same(t, report, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	f := FormatterFunc{ID: "txt", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "itax_report_")
	assert.Contains(t, filename, ".txt")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "console-lite", "json", "csv", "yaml", "html"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("VERBOSE").Name())
	assert.Equal(t, "yaml", GetFormatterByName("yml").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Len(t, FormatterNames(), 6)
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "INCOME TAX REGIME COMPARISON (FY 2023-24)")
	assert.Contains(t, content, "Taxable Income:    ₹14,50,000.00")
	assert.Contains(t, content, "Total Tax:         ₹1,45,600.00")
	assert.Contains(t, content, "12,00,000 - 15,00,000")
	assert.Contains(t, content, "above 10,00,000")
	assert.Contains(t, content, "Recommended: Old Regime (saves ₹31,200.00)")
	assert.Contains(t, content, "Assumptions:")
}

func TestConsoleFormatter_RebateLine(t *testing.T) {
	cmp := calculation.CompareRegimesWithRules(decimal.NewFromInt(600000), decimal.NewFromInt(150000), domain.AgeNormal, calculation.DefaultRules())
	out, err := ConsoleFormatter{}.Format(NewReport("2023-24", cmp))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Rebate u/s 87A:   -₹7,500.00")
	assert.Contains(t, string(out), "Taxpayer 1")
}

func TestConsoleFormatter_RulesOverride(t *testing.T) {
	rules := calculation.DefaultRules()
	rules.FinancialYear = "2024-25"
	rules.CessRate = decimal.RequireFromString("0.03")
	rules.StandardDeduction = decimal.NewFromInt(75000)

	cmp := calculation.CompareRegimesWithRules(decimal.NewFromInt(1200000), decimal.Zero, domain.AgeNormal, rules)
	report := NewReport(rules.FinancialYear, cmp).WithRules(rules)

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Cess (3%):")
	assert.NotContains(t, content, "Cess (4%)")
	assert.Contains(t, content, "Health and education cess: 3% of tax after rebate")
	assert.Contains(t, content, "Standard deduction of 75,000")
	assert.Contains(t, content, "Slab rates for FY 2024-25")

	html, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Health and education cess: 3% of tax after rebate")
}

func TestFormatResult_CessLabel(t *testing.T) {
	rules := calculation.DefaultRules()
	res := calculation.ComputeTaxWithSlabs(domain.TaxInput{GrossIncome: decimal.NewFromInt(1500000), Regime: domain.RegimeNew},
		rules.NewRegimeSlabs, rules)
	assert.Contains(t, string(FormatResult(res, rules)), "  Cess (4%):         ₹5,600.00")

	rules.CessRate = decimal.RequireFromString("0.03")
	res = calculation.ComputeTaxWithSlabs(domain.TaxInput{GrossIncome: decimal.NewFromInt(1500000), Regime: domain.RegimeNew},
		rules.NewRegimeSlabs, rules)
	assert.Contains(t, string(FormatResult(res, rules)), "  Cess (3%):         ₹4,200.00")
}

func TestAssumptions(t *testing.T) {
	got := Assumptions(calculation.DefaultRules())
	assert.Contains(t, got, "Standard deduction of 50,000 applied in both regimes once taxable income exceeds 50,000")
	assert.Contains(t, got, "Section 87A rebate: full tax up to 7.00 L taxable (new), up to 12,500 at or below 5.00 L taxable (old)")
	assert.Contains(t, got, "Health and education cess: 4% of tax after rebate")
	assert.Equal(t, "Slab rates for FY 2023-24", got[0])
}

func TestReport_EffectiveRules(t *testing.T) {
	r := NewReport("2023-24")
	assert.True(t, r.EffectiveRules().CessRate.Equal(decimal.RequireFromString("0.04")))

	rules := calculation.DefaultRules()
	rules.CessRate = decimal.RequireFromString("0.02")
	assert.True(t, r.WithRules(rules).EffectiveRules().CessRate.Equal(decimal.RequireFromString("0.02")))
}

func TestConsoleFormatter_CurrentRegime(t *testing.T) {
	report := buildTestReport()
	report.Comparisons[0].CurrentRegime = domain.RegimeOld
	report.Comparisons[1].CurrentRegime = domain.RegimeOld

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Currently filing: Old Regime (switching saves ₹1,11,800.00)")
	assert.Contains(t, string(out), "Currently filing: Old Regime (already the cheaper regime)")

	csv, err := CSVSummarizer{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(csv), ",Savings,CurrentRegime")
	assert.Contains(t, string(csv), "B,normal,1000000.00,550000.00,23400.00,950000.00,54600.00,old,31200.00,old")

	html, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Currently filing under the Old Regime; switching is worth it.")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "TAX REGIME SUMMARY")
	assert.Contains(t, content, "₹15,00,000")
	assert.Contains(t, content, "₹23,400.00")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Name,AgeBracket,GrossIncome")
	assert.Contains(t, content, "A,normal,1500000.00,1450000.00,257400.00,1450000.00,145600.00,new,111800.00")
	assert.Contains(t, content, "B,normal,1000000.00,550000.00,23400.00,950000.00,54600.00,old,31200.00")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Comparisons, 2)
	assert.True(t, decoded.Comparisons[0].NewResult.TotalTax.Equal(decimal.NewFromInt(145600)))
	assert.Equal(t, domain.RegimeOld, decoded.Comparisons[1].RecommendedRegime)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	assert.Contains(t, string(out), "financial_year:")
	assert.Contains(t, string(out), "recommended_regime: old")

	var decoded Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Comparisons, 2)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<html")
	assert.Contains(t, content, "Recommended: New Regime")
	assert.Contains(t, content, "₹1,45,600.00")
	assert.Contains(t, content, "Surcharge and marginal relief are not modelled")
}

func TestMarshalAs(t *testing.T) {
	v := map[string]string{"k": "v"}
	j, err := MarshalAs("json", v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(j))

	y, err := MarshalAs("yaml", v)
	require.NoError(t, err)
	assert.Equal(t, "k: v\n", string(y))
}
