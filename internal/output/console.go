package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints the full slab-by-slab breakdown of both regimes
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	rules := report.EffectiveRules()
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "INCOME TAX REGIME COMPARISON (FY %s)\n", report.FinancialYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	for i, cmp := range report.Comparisons {
		fmt.Fprintln(&buf)
		name := cmp.Name
		if name == "" {
			name = fmt.Sprintf("Taxpayer %d", i+1)
		}
		fmt.Fprintf(&buf, "%s  (%s)\n", name, cmp.OldResult.AgeBracket.Label())
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		fmt.Fprintf(&buf, "Gross Income:        %s\n", FormatINR(cmp.OldResult.GrossIncome))
		fmt.Fprintln(&buf)
		for _, res := range []domain.TaxComputationResult{cmp.OldResult, cmp.NewResult} {
			writeResult(&buf, res, rules.CessRate)
		}
		fmt.Fprintf(&buf, "Recommended: %s (saves %s)\n", cmp.RecommendedRegime.Label(), FormatINR(cmp.AbsoluteSavings))
		if line := currentRegimeLine(cmp); line != "" {
			fmt.Fprintln(&buf, line)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Assumptions:")
	for _, a := range Assumptions(rules) {
		fmt.Fprintf(&buf, "  - %s\n", a)
	}
	return buf.Bytes(), nil
}

func currentRegimeLine(cmp domain.RegimeComparison) string {
	switch {
	case cmp.CurrentRegime == "":
		return ""
	case cmp.ShouldSwitch():
		return fmt.Sprintf("Currently filing: %s (switching saves %s)", cmp.CurrentRegime.Label(), FormatINR(cmp.AbsoluteSavings))
	}
	return fmt.Sprintf("Currently filing: %s (already the cheaper regime)", cmp.CurrentRegime.Label())
}

// FormatResult renders a single-regime computation the way the console report does.
// rules supplies the cess rate shown in the label.
func FormatResult(res domain.TaxComputationResult, rules domain.TaxRules) []byte {
	var buf bytes.Buffer
	writeResult(&buf, res, rules.CessRate)
	return buf.Bytes()
}

func writeResult(buf *bytes.Buffer, res domain.TaxComputationResult, cessRate decimal.Decimal) {
	fmt.Fprintf(buf, "%s\n", strings.ToUpper(res.Regime.Label()))
	fmt.Fprintf(buf, "  Taxable Income:    %s\n", FormatINR(res.TaxableIncome))
	if len(res.Slabs) > 0 {
		fmt.Fprintf(buf, "  %-26s %6s %16s %14s\n", "Slab", "Rate", "Taxed", "Tax")
		for _, line := range res.Slabs {
			fmt.Fprintf(buf, "  %-26s %6s %16s %14s\n", SlabRange(line), FormatRate(line.Rate), FormatINR(line.Taxed), FormatINR(line.Tax))
		}
	}
	fmt.Fprintf(buf, "  Tax on Income:     %s\n", FormatINR(res.GrossTax))
	if res.Rebate.IsPositive() {
		fmt.Fprintf(buf, "  Rebate u/s 87A:   -%s\n", FormatINR(res.Rebate))
	}
	fmt.Fprintf(buf, "  %-19s%s\n", "Cess ("+FormatRate(cessRate)+"):", FormatINR(res.CessAmount))
	fmt.Fprintf(buf, "  Total Tax:         %s\n", FormatINR(res.TotalTax))
	fmt.Fprintf(buf, "  Effective Rate:    %s\n\n", FormatPercent(res.EffectiveRatePercent))
}

// SlabRange labels a slab line, e.g. "3,00,000 - 6,00,000" or "above 15,00,000"
func SlabRange(line domain.SlabLine) string {
	if line.Unbounded {
		return "above " + GroupIndian(line.Lower, 0)
	}
	return GroupIndian(line.Lower, 0) + " - " + GroupIndian(line.Upper, 0)
}

// ConsoleLiteFormatter prints one summary line per comparison
type ConsoleLiteFormatter struct{}

func (ConsoleLiteFormatter) Name() string { return "console-lite" }

func (ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX REGIME SUMMARY (FY %s)\n", report.FinancialYear)
	fmt.Fprintf(&buf, "%-20s %16s %16s %16s %-6s %14s\n", "Name", "Gross", "Old Regime", "New Regime", "Pick", "Savings")
	for i, cmp := range report.Comparisons {
		name := cmp.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(&buf, "%-20s %16s %16s %16s %-6s %14s\n",
			name,
			FormatINRWhole(cmp.OldResult.GrossIncome),
			FormatINR(cmp.OldResult.TotalTax),
			FormatINR(cmp.NewResult.TotalTax),
			cmp.RecommendedRegime,
			FormatINR(cmp.AbsoluteSavings))
	}
	return buf.Bytes(), nil
}
