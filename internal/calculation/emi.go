package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// LoanInput describes a fixed-rate loan repaid in equal monthly instalments
type LoanInput struct {
	Principal       decimal.Decimal `json:"principal" yaml:"principal"`
	AnnualRatePct   decimal.Decimal `json:"annualRatePct" yaml:"annual_rate_pct"`
	TenureMonths    int             `json:"tenureMonths" yaml:"tenure_months"`
	IncludeSchedule bool            `json:"-" yaml:"-"`
}

// Validate checks the loan parameters
func (in LoanInput) Validate() error {
	if !in.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if in.AnnualRatePct.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidInput)
	}
	if in.TenureMonths <= 0 {
		return fmt.Errorf("%w: tenure must be at least one month", ErrInvalidInput)
	}
	return nil
}

// AmortizationRow is one month of a repayment schedule
type AmortizationRow struct {
	Month          int             `json:"month" yaml:"month"`
	Payment        decimal.Decimal `json:"payment" yaml:"payment"`
	Principal      decimal.Decimal `json:"principal" yaml:"principal"`
	Interest       decimal.Decimal `json:"interest" yaml:"interest"`
	ClosingBalance decimal.Decimal `json:"closingBalance" yaml:"closing_balance"`
}

// LoanResult is the outcome of CalculateEMI
type LoanResult struct {
	MonthlyPayment decimal.Decimal   `json:"monthlyPayment" yaml:"monthly_payment"`
	TotalPayment   decimal.Decimal   `json:"totalPayment" yaml:"total_payment"`
	TotalInterest  decimal.Decimal   `json:"totalInterest" yaml:"total_interest"`
	Schedule       []AmortizationRow `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// CalculateEMI computes the equated monthly instalment
//
//	emi = P·r·(1+r)^n / ((1+r)^n − 1),  r = annual% / 12 / 100
//
// The instalment is rounded to paise; the final month absorbs the rounding so the
// schedule closes at exactly zero.
func CalculateEMI(in LoanInput) (LoanResult, error) {
	if err := in.Validate(); err != nil {
		return LoanResult{}, err
	}

	n := in.TenureMonths
	r := in.AnnualRatePct.Div(twelve).Div(hundred)

	var emi decimal.Decimal
	if r.IsZero() {
		emi = in.Principal.Div(decimal.NewFromInt(int64(n)))
	} else {
		factor := powInt(decimal.NewFromInt(1).Add(r), n)
		emi = in.Principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	}
	emi = emi.Round(2)

	balance := in.Principal
	total := decimal.Zero
	var schedule []AmortizationRow
	for month := 1; month <= n; month++ {
		interest := balance.Mul(r).Round(2)
		payment := emi
		principalPart := payment.Sub(interest)
		if month == n || principalPart.GreaterThan(balance) {
			principalPart = balance
			payment = principalPart.Add(interest)
		}
		balance = balance.Sub(principalPart)
		total = total.Add(payment)

		if in.IncludeSchedule {
			schedule = append(schedule, AmortizationRow{
				Month:          month,
				Payment:        payment,
				Principal:      principalPart,
				Interest:       interest,
				ClosingBalance: balance,
			})
		}
		if balance.IsZero() {
			break
		}
	}

	return LoanResult{
		MonthlyPayment: emi,
		TotalPayment:   total,
		TotalInterest:  total.Sub(in.Principal),
		Schedule:       schedule,
	}, nil
}

// powInt raises base to a non-negative integer power, rounding intermediate
// products to 20 places.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(20)
		}
		base = base.Mul(base).Round(20)
		n >>= 1
	}
	return result
}
