package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
)

// Report is the unit every formatter renders: one or more regime comparisons
// computed under the same financial year's rules.
type Report struct {
	FinancialYear string                    `json:"financialYear" yaml:"financial_year"`
	Comparisons   []domain.RegimeComparison `json:"comparisons" yaml:"comparisons"`

	// Rules the comparisons were computed under; nil means the built-in rules
	Rules *domain.TaxRules `json:"-" yaml:"-"`
}

// NewReport wraps comparisons into a Report
func NewReport(financialYear string, comparisons ...domain.RegimeComparison) *Report {
	return &Report{FinancialYear: financialYear, Comparisons: comparisons}
}

// WithRules records the rules behind the report's numbers
func (r *Report) WithRules(rules domain.TaxRules) *Report {
	r.Rules = &rules
	return r
}

// EffectiveRules returns the report's rules, falling back to the built-in set
func (r *Report) EffectiveRules() domain.TaxRules {
	if r.Rules != nil {
		return *r.Rules
	}
	return calculation.DefaultRules()
}

// Formatter renders a report to bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"csv":          CSVSummarizer{},
	"yaml":         YAMLFormatter{},
	"html":         HTMLFormatter{},
}

// aliases accepted on the command line
var formatAliases = map[string]string{
	"verbose": "console",
	"text":    "console",
	"summary": "console-lite",
	"yml":     "yaml",
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	return formatters[key]
}

// FormatterNames lists the registered formatter names
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("itax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
