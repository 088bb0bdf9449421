package breakeven

import (
	"context"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds break-even deduction amounts between the two regimes
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// BreakEvenDeductions binary-searches whole rupees in [0, ceiling] for the smallest
// deduction at which the old regime's total tax is strictly below the new regime's.
// Old-regime tax never rises as deductions grow, so the predicate flips once.
func (s *Solver) BreakEvenDeductions(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.Engine == nil {
		return nil, &BreakEvenError{Operation: "break_even", Message: "solver has no engine"}
	}

	tolerance := s.Options.Tolerance
	if tolerance.IsNegative() {
		return nil, &BreakEvenError{Operation: "break_even", Message: "tolerance cannot be negative"}
	}
	if tolerance.LessThan(decimal.NewFromInt(1)) {
		tolerance = decimal.NewFromInt(1)
	}
	maxIter := s.Options.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultSolverOptions().MaxIterations
	}

	age := req.AgeBracket
	if age == "" {
		age = domain.AgeNormal
	}

	newTotal := s.Engine.ComputeTax(req.GrossIncome, decimal.Zero, domain.RegimeNew, age).TotalTax
	oldTotal := func(ded decimal.Decimal) decimal.Decimal {
		return s.Engine.ComputeTax(req.GrossIncome, ded, domain.RegimeOld, age).TotalTax
	}

	res := &Result{
		GrossIncome: req.GrossIncome,
		AgeBracket:  age,
		NewTotalTax: newTotal,
		Converged:   true,
	}

	lo := decimal.Zero
	if t := oldTotal(lo); t.LessThan(newTotal) {
		res.Found = true
		res.Deductions = lo
		res.OldTotalTax = t
		return res, nil
	}

	hi := req.GrossIncome.Ceil()
	if req.Ceiling != nil {
		hi = req.Ceiling.Ceil()
	}
	if t := oldTotal(hi); !t.LessThan(newTotal) {
		res.Deductions = hi
		res.OldTotalTax = t
		return res, nil
	}

	two := decimal.NewFromInt(2)
	for hi.Sub(lo).GreaterThan(tolerance) {
		if res.Iterations >= maxIter {
			res.Converged = false
			s.Engine.Logger.Warnf("break-even search stopped after %d iterations (bracket %s..%s)",
				res.Iterations, lo.String(), hi.String())
			break
		}

		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{
				Operation: "break_even",
				Message:   "search cancelled",
				Cause:     ctx.Err(),
			}
		default:
		}

		res.Iterations++
		mid := lo.Add(hi).Div(two).Floor()
		if !mid.GreaterThan(lo) {
			break
		}
		if oldTotal(mid).LessThan(newTotal) {
			hi = mid
		} else {
			lo = mid
		}
	}

	res.Found = true
	res.Deductions = hi
	res.OldTotalTax = oldTotal(hi)
	s.Engine.Logger.Debugf("break-even for %s: deductions=%s after %d iterations",
		req.GrossIncome.StringFixed(0), hi.String(), res.Iterations)
	return res, nil
}
