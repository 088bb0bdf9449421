package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PPF scheme limits
var (
	PPFMaxYearlyDeposit = decimal.NewFromInt(150000)
	PPFDefaultRatePct   = decimal.NewFromFloat(7.1)
)

// PPFMinYears is the lock-in period of a PPF account
const PPFMinYears = 15

// PPFInput describes yearly deposits into a Public Provident Fund account
type PPFInput struct {
	YearlyDeposit decimal.Decimal `json:"yearlyDeposit" yaml:"yearly_deposit"`
	AnnualRatePct decimal.Decimal `json:"annualRatePct" yaml:"annual_rate_pct"`
	Years         int             `json:"years" yaml:"years"`
}

// Validate checks the PPF parameters against the scheme limits
func (in PPFInput) Validate() error {
	if !in.YearlyDeposit.IsPositive() {
		return fmt.Errorf("%w: yearly deposit must be positive", ErrInvalidInput)
	}
	if in.YearlyDeposit.GreaterThan(PPFMaxYearlyDeposit) {
		return fmt.Errorf("%w: yearly deposit cannot exceed %s", ErrInvalidInput, PPFMaxYearlyDeposit.String())
	}
	if in.AnnualRatePct.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidInput)
	}
	if in.Years < PPFMinYears {
		return fmt.Errorf("%w: PPF tenure is at least %d years", ErrInvalidInput, PPFMinYears)
	}
	return nil
}

// PPFYear is one row of the year-wise PPF statement
type PPFYear struct {
	Year           int             `json:"year" yaml:"year"`
	Deposit        decimal.Decimal `json:"deposit" yaml:"deposit"`
	Interest       decimal.Decimal `json:"interest" yaml:"interest"`
	ClosingBalance decimal.Decimal `json:"closingBalance" yaml:"closing_balance"`
}

// PPFResult is the outcome of CalculatePPF
type PPFResult struct {
	TotalDeposited decimal.Decimal `json:"totalDeposited" yaml:"total_deposited"`
	TotalInterest  decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	MaturityValue  decimal.Decimal `json:"maturityValue" yaml:"maturity_value"`
	Years          []PPFYear       `json:"years" yaml:"years"`
}

// CalculatePPF compounds annually with the deposit made at the start of each year.
// A zero rate selects PPFDefaultRatePct.
func CalculatePPF(in PPFInput) (PPFResult, error) {
	if in.AnnualRatePct.IsZero() {
		in.AnnualRatePct = PPFDefaultRatePct
	}
	if err := in.Validate(); err != nil {
		return PPFResult{}, err
	}

	rate := in.AnnualRatePct.Div(hundred)
	balance := decimal.Zero
	deposited := decimal.Zero
	rows := make([]PPFYear, 0, in.Years)

	for year := 1; year <= in.Years; year++ {
		balance = balance.Add(in.YearlyDeposit)
		deposited = deposited.Add(in.YearlyDeposit)
		interest := balance.Mul(rate)
		balance = balance.Add(interest)
		rows = append(rows, PPFYear{
			Year:           year,
			Deposit:        in.YearlyDeposit,
			Interest:       interest.Round(2),
			ClosingBalance: balance.Round(2),
		})
	}

	maturity := balance.Round(2)
	return PPFResult{
		TotalDeposited: deposited,
		TotalInterest:  maturity.Sub(deposited),
		MaturityValue:  maturity,
		Years:          rows,
	}, nil
}
