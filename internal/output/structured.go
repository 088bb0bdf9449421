package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the report as JSON; decimals are encoded as strings
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// YAMLFormatter emits the report as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(report)
}

// CSVSummarizer writes one row per comparison
type CSVSummarizer struct{}

func (CSVSummarizer) Name() string { return "csv" }

func (CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "AgeBracket", "GrossIncome", "OldTaxable", "OldTotalTax", "NewTaxable", "NewTotalTax", "Recommended", "Savings", "CurrentRegime"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, cmp := range report.Comparisons {
		row := []string{
			cmp.Name,
			string(cmp.OldResult.AgeBracket),
			cmp.OldResult.GrossIncome.StringFixed(2),
			cmp.OldResult.TaxableIncome.StringFixed(2),
			cmp.OldResult.TotalTax.StringFixed(2),
			cmp.NewResult.TaxableIncome.StringFixed(2),
			cmp.NewResult.TotalTax.StringFixed(2),
			string(cmp.RecommendedRegime),
			cmp.AbsoluteSavings.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// MarshalAs encodes an arbitrary value as json or yaml, for command results that
// are not regime comparisons (calculator outputs, solver results).
func MarshalAs(format string, v interface{}) ([]byte, error) {
	if format == "yaml" || format == "yml" {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
