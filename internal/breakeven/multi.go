package breakeven

import (
	"context"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweep computes break-even deductions for every income from..to (inclusive) in
// steps of step. It stops at the first error or when ctx is done.
func (s *Solver) Sweep(ctx context.Context, from, to, step decimal.Decimal, age domain.AgeBracket) ([]Result, error) {
	if !step.IsPositive() {
		return nil, &BreakEvenError{Operation: "sweep", Message: "step must be positive"}
	}
	if from.GreaterThan(to) {
		return nil, &BreakEvenError{Operation: "sweep", Message: "from cannot exceed to"}
	}

	var results []Result
	for gross := from; gross.LessThanOrEqual(to); gross = gross.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, &BreakEvenError{Operation: "sweep", Message: "sweep cancelled", Cause: err}
		}
		res, err := s.BreakEvenDeductions(ctx, Request{GrossIncome: gross, AgeBracket: age})
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}
