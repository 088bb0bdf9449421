package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/tui/tuistyles"
)

// SlabTable renders the slab-by-slab breakdown of one regime result
func SlabTable(res domain.TaxComputationResult) string {
	var b strings.Builder

	b.WriteString(tuistyles.TableHeaderStyle.Render(strings.ToUpper(res.Regime.Label())))
	b.WriteString("\n")
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-24s %5s %14s", "Slab", "Rate", "Tax")))
	b.WriteString("\n")

	if len(res.Slabs) == 0 {
		b.WriteString(tuistyles.SubtitleStyle.Render("no taxable income"))
		b.WriteString("\n")
	}
	for _, line := range res.Slabs {
		b.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-24s %5s %14s",
			output.SlabRange(line), output.FormatRate(line.Rate), output.FormatINR(line.Tax))))
		b.WriteString("\n")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Taxable income", output.FormatINR(res.TaxableIncome)},
		{"Slab tax", output.FormatINR(res.GrossTax)},
		{"Rebate u/s 87A", "-" + output.FormatINR(res.Rebate)},
		{"Cess", output.FormatINR(res.CessAmount)},
		{"Total tax", output.FormatINR(res.TotalTax)},
		{"Effective rate", output.FormatPercent(res.EffectiveRatePercent)},
	}
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", tuistyles.MetricLabelStyle.Width(16).Render(r.label), r.value))
	}

	return strings.TrimRight(b.String(), "\n")
}
