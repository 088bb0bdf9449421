package breakeven

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Request asks for the smallest old-regime deduction that beats the new regime
type Request struct {
	GrossIncome decimal.Decimal   `json:"grossIncome" yaml:"gross_income"`
	AgeBracket  domain.AgeBracket `json:"ageBracket" yaml:"age_bracket"`

	// Ceiling bounds the search; defaults to the gross income
	Ceiling *decimal.Decimal `json:"ceiling,omitempty" yaml:"ceiling,omitempty"`
}

// Validate checks the request
func (r Request) Validate() error {
	if r.GrossIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "gross income cannot be negative",
		}
	}
	if r.AgeBracket != "" && !r.AgeBracket.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unknown age bracket " + string(r.AgeBracket),
		}
	}
	if r.Ceiling != nil && r.Ceiling.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "ceiling cannot be negative",
		}
	}
	return nil
}

// Result reports the break-even point for one income
type Result struct {
	GrossIncome decimal.Decimal   `json:"grossIncome" yaml:"gross_income"`
	AgeBracket  domain.AgeBracket `json:"ageBracket" yaml:"age_bracket"`

	// Found is false when no deduction within the ceiling makes the old regime cheaper
	Found      bool            `json:"found" yaml:"found"`
	Deductions decimal.Decimal `json:"deductions" yaml:"deductions"`

	OldTotalTax decimal.Decimal `json:"oldTotalTax" yaml:"old_total_tax"` // at Deductions (or at the ceiling when not found)
	NewTotalTax decimal.Decimal `json:"newTotalTax" yaml:"new_total_tax"`

	Iterations int  `json:"iterations" yaml:"iterations"`
	Converged  bool `json:"converged" yaml:"converged"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Stop when the bracket is this narrow (rupees)
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 64,
	}
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
