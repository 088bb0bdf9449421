package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profiles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX PLANNING COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 84) + "\n")
	sb.WriteString(fmt.Sprintf("Base Profile: %s\n", compSet.BaseProfileName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %-5s\n",
		nameWidth, "Profile",
		numWidth, "Gross",
		numWidth, "Deductions",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		"Pick"))
	sb.WriteString(strings.Repeat("-", 84) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 84) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ProfileName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			if !alt.IncomeDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Gross Income:  %s%s\n",
					tf.deltaSymbol(alt.IncomeDiffFromBase), output.FormatINR(alt.IncomeDiffFromBase.Abs())))
			}
			sb.WriteString(fmt.Sprintf("  Tax Impact:    %s%s (%s%%)\n",
				tf.deltaSymbol(alt.TaxDiffFromBase), output.FormatINR(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single profile row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ProfileName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %-5s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatShort(result.GrossIncome),
		numWidth, output.FormatShort(result.TotalDeductions),
		numWidth, output.FormatINRWhole(result.OldTax),
		numWidth, output.FormatINRWhole(result.NewTax),
		string(result.BestRegime))
}

// deltaSymbol returns "+" for increases and "-" for decreases
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of tax changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseProfileName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.TaxDiffFromBase.IsPositive() {
			change = "+" + output.FormatINRWhole(alt.TaxDiffFromBase)
		} else if alt.TaxDiffFromBase.IsNegative() {
			change = "-" + output.FormatINRWhole(alt.TaxDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ProfileName, change))
	}

	return sb.String()
}
