package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two alternative income-tax rule sets
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// ParseRegime converts user input ("old", "New", "new_regime") into a Regime
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old", "old_regime", "old-regime":
		return RegimeOld, nil
	case "new", "new_regime", "new-regime":
		return RegimeNew, nil
	}
	return "", fmt.Errorf("unknown regime %q (want old or new)", s)
}

// Other returns the opposite regime
func (r Regime) Other() Regime {
	if r == RegimeOld {
		return RegimeNew
	}
	return RegimeOld
}

// Label returns a display name such as "New Regime"
func (r Regime) Label() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	}
	return string(r)
}

// Valid reports whether r is one of the known regimes
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// AgeBracket groups taxpayers by age. Only the old regime's exemption limit depends on it.
type AgeBracket string

const (
	AgeNormal      AgeBracket = "normal"       // below 60
	AgeSenior      AgeBracket = "senior"       // 60 to 80
	AgeSuperSenior AgeBracket = "super_senior" // above 80
)

// AgeBracketForAge maps an age in years to its bracket
func AgeBracketForAge(age int) AgeBracket {
	switch {
	case age > 80:
		return AgeSuperSenior
	case age >= 60:
		return AgeSenior
	default:
		return AgeNormal
	}
}

// ParseAgeBracket converts user input into an AgeBracket
func ParseAgeBracket(s string) (AgeBracket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "general", "below60", "":
		return AgeNormal, nil
	case "senior", "senior_citizen":
		return AgeSenior, nil
	case "super_senior", "super-senior", "supersenior", "super_senior_citizen":
		return AgeSuperSenior, nil
	}
	return "", fmt.Errorf("unknown age bracket %q (want normal, senior or super_senior)", s)
}

// Label returns a display name for the bracket
func (a AgeBracket) Label() string {
	switch a {
	case AgeNormal:
		return "Below 60"
	case AgeSenior:
		return "Senior (60-80)"
	case AgeSuperSenior:
		return "Super Senior (80+)"
	}
	return string(a)
}

// Valid reports whether a is one of the known brackets
func (a AgeBracket) Valid() bool {
	return a == AgeNormal || a == AgeSenior || a == AgeSuperSenior
}

// TaxSlab is one bracket of a progressive schedule. The final slab of a table is
// unbounded and taxes all income above the previous bound.
type TaxSlab struct {
	UpperBound decimal.Decimal `yaml:"upper_bound,omitempty" json:"upperBound,omitempty"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded  bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
}

// SlabTable is an ascending list of slabs
type SlabTable []TaxSlab

// Validate checks that bounds strictly increase, that only the last slab is unbounded
// and that every rate lies in [0,1]. Rates need not be monotonic.
func (st SlabTable) Validate() error {
	if len(st) == 0 {
		return fmt.Errorf("slab table is empty")
	}
	prev := decimal.Zero
	one := decimal.NewFromInt(1)
	for i, s := range st {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(one) {
			return fmt.Errorf("slab %d: rate %s outside [0,1]", i, s.Rate.String())
		}
		if s.Unbounded {
			if i != len(st)-1 {
				return fmt.Errorf("slab %d: only the last slab may be unbounded", i)
			}
			continue
		}
		if !s.UpperBound.GreaterThan(prev) {
			return fmt.Errorf("slab %d: upper bound %s must exceed %s", i, s.UpperBound.String(), prev.String())
		}
		prev = s.UpperBound
	}
	if !st[len(st)-1].Unbounded {
		return fmt.Errorf("last slab must be unbounded")
	}
	return nil
}

// Clone returns a copy that shares no backing array with st
func (st SlabTable) Clone() SlabTable {
	if st == nil {
		return nil
	}
	out := make(SlabTable, len(st))
	copy(out, st)
	return out
}

// TaxInput is the argument tuple of a single-regime computation
type TaxInput struct {
	GrossIncome decimal.Decimal `json:"grossIncome" yaml:"gross_income"`
	Deductions  decimal.Decimal `json:"deductions" yaml:"deductions"`
	Regime      Regime          `json:"regime" yaml:"regime"`
	AgeBracket  AgeBracket      `json:"ageBracket" yaml:"age_bracket"`
}

// SlabLine records how much income one slab taxed during a computation
type SlabLine struct {
	Lower     decimal.Decimal `json:"lower" yaml:"lower"`
	Upper     decimal.Decimal `json:"upper,omitempty" yaml:"upper,omitempty"`
	Unbounded bool            `json:"unbounded,omitempty" yaml:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate" yaml:"rate"`
	Taxed     decimal.Decimal `json:"taxed" yaml:"taxed"`
	Tax       decimal.Decimal `json:"tax" yaml:"tax"`
}

// TaxComputationResult is the immutable outcome of one computation
type TaxComputationResult struct {
	Regime               Regime          `json:"regime" yaml:"regime"`
	AgeBracket           AgeBracket      `json:"ageBracket" yaml:"age_bracket"`
	GrossIncome          decimal.Decimal `json:"grossIncome" yaml:"gross_income"`
	TaxableIncome        decimal.Decimal `json:"taxableIncome" yaml:"taxable_income"`
	GrossTax             decimal.Decimal `json:"grossTax" yaml:"gross_tax"`
	Rebate               decimal.Decimal `json:"rebate" yaml:"rebate"`
	NetTax               decimal.Decimal `json:"netTax" yaml:"net_tax"`
	CessAmount           decimal.Decimal `json:"cessAmount" yaml:"cess_amount"`
	TotalTax             decimal.Decimal `json:"totalTax" yaml:"total_tax"`
	EffectiveRatePercent decimal.Decimal `json:"effectiveRatePercent" yaml:"effective_rate_percent"`
	Slabs                []SlabLine      `json:"slabs,omitempty" yaml:"slabs,omitempty"`
}

// RegimeComparison holds both regime results for the same income tuple
type RegimeComparison struct {
	Name              string               `json:"name,omitempty" yaml:"name,omitempty"`
	OldResult         TaxComputationResult `json:"oldResult" yaml:"old_result"`
	NewResult         TaxComputationResult `json:"newResult" yaml:"new_result"`
	RecommendedRegime Regime               `json:"recommendedRegime" yaml:"recommended_regime"`
	AbsoluteSavings   decimal.Decimal      `json:"absoluteSavings" yaml:"absolute_savings"`

	// CurrentRegime is the regime the taxpayer files under today, when known
	CurrentRegime Regime `json:"currentRegime,omitempty" yaml:"current_regime,omitempty"`
}

// ShouldSwitch reports whether the taxpayer's current regime is not the cheaper one.
// It is false when the current regime is unknown.
func (rc RegimeComparison) ShouldSwitch() bool {
	return rc.CurrentRegime != "" && rc.CurrentRegime != rc.RecommendedRegime
}

// Result returns the result for the requested regime
func (rc RegimeComparison) Result(r Regime) TaxComputationResult {
	if r == RegimeOld {
		return rc.OldResult
	}
	return rc.NewResult
}

// Recommended returns the result for the recommended regime
func (rc RegimeComparison) Recommended() TaxComputationResult {
	return rc.Result(rc.RecommendedRegime)
}
