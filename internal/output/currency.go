package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// FormatINR renders an amount in rupees with Indian digit grouping, e.g. ₹12,34,567.89
func FormatINR(amount decimal.Decimal) string {
	return formatINR(amount, 2)
}

// FormatINRWhole renders a rounded rupee amount without paise, e.g. ₹1,45,600
func FormatINRWhole(amount decimal.Decimal) string {
	return formatINR(amount, 0)
}

func formatINR(amount decimal.Decimal, places int32) string {
	rounded := amount.Round(places)
	s := "₹" + GroupIndian(rounded.Abs(), places)
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// GroupIndian formats a number with places decimals and 3-2-2 digit grouping
func GroupIndian(amount decimal.Decimal, places int32) string {
	s := amount.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return sign + groupDigits(intPart) + frac
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatShort abbreviates large amounts in lakh and crore, e.g. 14.50 L, 1.25 Cr
func FormatShort(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return amount.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return amount.Div(lakh).StringFixed(2) + " L"
	}
	return GroupIndian(amount, 0)
}

// FormatPercent formats a percentage value such as 9.7067 as "9.71%"
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate such as 0.05 as "5%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
