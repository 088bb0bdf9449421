package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Type",
		"Gross Income",
		"Deductions",
		"Old Regime Tax",
		"New Regime Tax",
		"Best Regime",
		"Regime Savings",
		"Income Diff from Base",
		"Tax Diff from Base",
		"Tax % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.ProfileName,
		rowType,
		result.GrossIncome.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.OldTax.StringFixed(2),
		result.NewTax.StringFixed(2),
		string(result.BestRegime),
		result.RegimeSavings.StringFixed(2),
		result.IncomeDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
	}
}
