package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountSuffixes = []struct {
	suffix string
	factor int64
}{
	{"crore", 10000000},
	{"cr", 10000000},
	{"lakh", 100000},
	{"lac", 100000},
	{"l", 100000},
	{"k", 1000},
}

// ParseAmount parses a rupee amount as typed by a user: digits with optional
// commas, a leading ₹ or "Rs", and an optional k / L / lakh / cr / crore suffix.
// Negative amounts and non-numeric values (NaN, Inf) are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.TrimPrefix(raw, "rs.")
	raw = strings.TrimPrefix(raw, "rs")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "_", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	factor := decimal.NewFromInt(1)
	for _, sfx := range amountSuffixes {
		if strings.HasSuffix(raw, sfx.suffix) {
			raw = strings.TrimSpace(strings.TrimSuffix(raw, sfx.suffix))
			factor = decimal.NewFromInt(sfx.factor)
			break
		}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q cannot be negative", s)
	}
	return d.Mul(factor), nil
}
