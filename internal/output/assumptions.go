package output

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// Assumptions lists the modelling simplifications behind a computation under rules,
// rendered in detailed outputs
func Assumptions(rules domain.TaxRules) []string {
	out := []string{}
	if rules.FinancialYear != "" {
		out = append(out, "Slab rates for FY "+rules.FinancialYear)
	}
	return append(out,
		fmt.Sprintf("Standard deduction of %s applied in both regimes once taxable income exceeds %s",
			GroupIndian(rules.StandardDeduction, 0), GroupIndian(rules.StandardDeductionThreshold, 0)),
		fmt.Sprintf("Section 87A rebate: %s (new), %s (old)",
			rebateText(rules.NewRegimeRebate), rebateText(rules.OldRegimeRebate)),
		fmt.Sprintf("Health and education cess: %s of tax after rebate", FormatRate(rules.CessRate)),
		"Surcharge and marginal relief are not modelled",
		"Amounts are computed exactly and rounded only for display",
	)
}

func rebateText(rr domain.RebateRule) string {
	if rr.Full {
		return "full tax up to " + FormatShort(rr.IncomeLimit) + " taxable"
	}
	return "up to " + GroupIndian(rr.Cap, 0) + " at or below " + FormatShort(rr.IncomeLimit) + " taxable"
}
