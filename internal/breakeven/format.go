package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/output"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format renders a single break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTIONS (OLD vs NEW REGIME)\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income:        %s\n", output.FormatINR(result.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Age Bracket:         %s\n", result.AgeBracket.Label()))
	sb.WriteString(fmt.Sprintf("New Regime Tax:      %s\n", output.FormatINR(result.NewTotalTax)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString(fmt.Sprintf("Old regime is cheaper once deductions reach %s\n", output.FormatINRWhole(result.Deductions)))
		sb.WriteString(fmt.Sprintf("Old Regime Tax there: %s\n", output.FormatINR(result.OldTotalTax)))
	} else {
		sb.WriteString(fmt.Sprintf("No deduction up to %s makes the old regime cheaper\n", output.FormatINRWhole(result.Deductions)))
		sb.WriteString(fmt.Sprintf("Old Regime Tax at that level: %s\n", output.FormatINR(result.OldTotalTax)))
	}
	return sb.String()
}

// FormatSweep renders one row per income level
func (tf *TableFormatter) FormatSweep(results []Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTION SWEEP\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %-18s %16s %16s\n", "Gross", "Break-even", "New Tax", "Old Tax"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range results {
		be := "never"
		if r.Found {
			be = output.FormatINRWhole(r.Deductions)
		}
		sb.WriteString(fmt.Sprintf("%-16s %-18s %16s %16s\n",
			output.FormatINRWhole(r.GrossIncome), be, output.FormatINR(r.NewTotalTax), output.FormatINR(r.OldTotalTax)))
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case !r.Found:
		return "NOT REACHABLE"
	case !r.Converged:
		return "STOPPED (iteration limit)"
	}
	return "FOUND"
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format renders a single result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatSweep renders a sweep
func (jf *JSONFormatter) FormatSweep(results []Result) (string, error) {
	return jf.marshal(results)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
