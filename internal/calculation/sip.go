package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SIPInput describes a monthly systematic investment plan
type SIPInput struct {
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment" yaml:"monthly_investment"`
	AnnualReturnPct   decimal.Decimal `json:"annualReturnPct" yaml:"annual_return_pct"`
	Years             int             `json:"years" yaml:"years"`
}

// Validate checks the SIP parameters
func (in SIPInput) Validate() error {
	if !in.MonthlyInvestment.IsPositive() {
		return fmt.Errorf("%w: monthly investment must be positive", ErrInvalidInput)
	}
	if in.AnnualReturnPct.IsNegative() {
		return fmt.Errorf("%w: expected return cannot be negative", ErrInvalidInput)
	}
	if in.Years <= 0 {
		return fmt.Errorf("%w: duration must be at least one year", ErrInvalidInput)
	}
	return nil
}

// SIPResult is the outcome of CalculateSIP
type SIPResult struct {
	Invested         decimal.Decimal `json:"invested" yaml:"invested"`
	EstimatedReturns decimal.Decimal `json:"estimatedReturns" yaml:"estimated_returns"`
	MaturityValue    decimal.Decimal `json:"maturityValue" yaml:"maturity_value"`
}

// CalculateSIP projects the maturity value of contributions made at the start of
// each month: FV = P·((1+i)^n − 1)/i·(1+i), i = annual% / 12 / 100.
func CalculateSIP(in SIPInput) (SIPResult, error) {
	if err := in.Validate(); err != nil {
		return SIPResult{}, err
	}

	n := in.Years * 12
	invested := in.MonthlyInvestment.Mul(decimal.NewFromInt(int64(n)))
	i := in.AnnualReturnPct.Div(twelve).Div(hundred)

	fv := invested
	if !i.IsZero() {
		onePlus := decimal.NewFromInt(1).Add(i)
		growth := powInt(onePlus, n).Sub(decimal.NewFromInt(1)).Div(i)
		fv = in.MonthlyInvestment.Mul(growth).Mul(onePlus)
	}
	fv = fv.Round(2)

	return SIPResult{
		Invested:         invested,
		EstimatedReturns: fv.Sub(invested),
		MaturityValue:    fv,
	}, nil
}
