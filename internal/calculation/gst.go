package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GSTMode says whether the entered amount already includes GST
type GSTMode string

const (
	GSTExclusive GSTMode = "exclusive"
	GSTInclusive GSTMode = "inclusive"
)

// GSTRates lists the notified GST rates in percent
var GSTRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.25),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// GSTInput describes a single GST computation
type GSTInput struct {
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	RatePct    decimal.Decimal `json:"ratePct" yaml:"rate_pct"`
	Mode       GSTMode         `json:"mode" yaml:"mode"`
	Interstate bool            `json:"interstate" yaml:"interstate"`
}

// Validate checks the amount, mode and rate
func (in GSTInput) Validate() error {
	if in.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}
	if in.Mode != GSTExclusive && in.Mode != GSTInclusive {
		return fmt.Errorf("%w: mode must be %s or %s", ErrInvalidInput, GSTExclusive, GSTInclusive)
	}
	for _, r := range GSTRates {
		if r.Equal(in.RatePct) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s%%", ErrUnsupportedGSTRate, in.RatePct.String())
}

// GSTResult splits an amount into its taxable value and tax components
type GSTResult struct {
	BaseAmount decimal.Decimal `json:"baseAmount" yaml:"base_amount"`
	GSTAmount  decimal.Decimal `json:"gstAmount" yaml:"gst_amount"`
	Total      decimal.Decimal `json:"total" yaml:"total"`
	CGST       decimal.Decimal `json:"cgst" yaml:"cgst"`
	SGST       decimal.Decimal `json:"sgst" yaml:"sgst"`
	IGST       decimal.Decimal `json:"igst" yaml:"igst"`
}

// CalculateGST adds GST to an exclusive amount or extracts it from an inclusive one.
// Intra-state supplies split the tax equally into CGST and SGST; inter-state
// supplies carry IGST.
func CalculateGST(in GSTInput) (GSTResult, error) {
	if err := in.Validate(); err != nil {
		return GSTResult{}, err
	}

	var base, tax decimal.Decimal
	if in.Mode == GSTInclusive {
		base = in.Amount.Mul(hundred).Div(hundred.Add(in.RatePct)).Round(2)
		tax = in.Amount.Sub(base)
	} else {
		base = in.Amount
		tax = in.Amount.Mul(in.RatePct).Div(hundred).Round(2)
	}

	res := GSTResult{
		BaseAmount: base,
		GSTAmount:  tax,
		Total:      base.Add(tax),
		CGST:       decimal.Zero,
		SGST:       decimal.Zero,
		IGST:       decimal.Zero,
	}
	if in.Interstate {
		res.IGST = tax
	} else {
		half := tax.Div(decimal.NewFromInt(2)).Round(2)
		res.CGST = half
		res.SGST = tax.Sub(half)
	}
	return res, nil
}
