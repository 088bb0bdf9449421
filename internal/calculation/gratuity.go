package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GratuityCap is the statutory ceiling on gratuity payable
var GratuityCap = decimal.NewFromInt(2000000)

// GratuityMinYears is the continuous service needed to qualify
const GratuityMinYears = 5

// GratuityInput describes an employee's service for a gratuity estimate
type GratuityInput struct {
	MonthlySalary decimal.Decimal `json:"monthlySalary" yaml:"monthly_salary"` // last drawn basic + DA
	Years         int             `json:"years" yaml:"years"`
	Months        int             `json:"months" yaml:"months"`
	CoveredByAct  bool            `json:"coveredByAct" yaml:"covered_by_act"`
}

// Validate checks the service figures
func (in GratuityInput) Validate() error {
	if !in.MonthlySalary.IsPositive() {
		return fmt.Errorf("%w: monthly salary must be positive", ErrInvalidInput)
	}
	if in.Years < 0 || in.Months < 0 || in.Months > 11 {
		return fmt.Errorf("%w: service must be non-negative years and 0-11 months", ErrInvalidInput)
	}
	return nil
}

// GratuityResult is the outcome of CalculateGratuity
type GratuityResult struct {
	ServiceYears int             `json:"serviceYears" yaml:"service_years"`
	Eligible     bool            `json:"eligible" yaml:"eligible"`
	Computed     decimal.Decimal `json:"computed" yaml:"computed"`
	Payable      decimal.Decimal `json:"payable" yaml:"payable"`
	Capped       bool            `json:"capped" yaml:"capped"`
}

// CalculateGratuity applies 15 days' wages per completed year of service
// (26 working days a month when covered by the Act, 30 otherwise). More than six
// months in the final year counts as a full year for covered employees.
func CalculateGratuity(in GratuityInput) (GratuityResult, error) {
	if err := in.Validate(); err != nil {
		return GratuityResult{}, err
	}

	years := in.Years
	divisor := decimal.NewFromInt(30)
	if in.CoveredByAct {
		divisor = decimal.NewFromInt(26)
		if in.Months > 6 {
			years++
		}
	}

	res := GratuityResult{ServiceYears: years, Eligible: years >= GratuityMinYears}
	if !res.Eligible {
		res.Computed = decimal.Zero
		res.Payable = decimal.Zero
		return res, nil
	}

	res.Computed = decimal.NewFromInt(15).Mul(in.MonthlySalary).Mul(decimal.NewFromInt(int64(years))).Div(divisor).Round(2)
	res.Payable = res.Computed
	if res.Payable.GreaterThan(GratuityCap) {
		res.Payable = GratuityCap
		res.Capped = true
	}
	return res, nil
}
