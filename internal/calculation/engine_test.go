package calculation

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", msg, want, got.String())
}

// recordingLogger collects debug lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Warnf(string, ...any)  {}
func (l *recordingLogger) Errorf(string, ...any) {}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
	assert.NoError(t, engine.Rules.Validate(), "Default rules should be valid")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	custom := &recordingLogger{}
	engine.SetLogger(custom)
	assert.Equal(t, custom, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Nil should install no-op logger")
}

func TestNewEngineWithRules_RejectsBadTables(t *testing.T) {
	rules := DefaultRules()
	rules.NewRegimeSlabs = domain.SlabTable{
		{UpperBound: d("600000"), Rate: d("0.05")},
		{UpperBound: d("300000"), Rate: d("0.10")},
		{Rate: d("0.30"), Unbounded: true},
	}

	engine, err := NewEngineWithRules(rules)
	assert.Error(t, err)
	assert.Nil(t, engine)
	assert.Contains(t, err.Error(), "new regime slabs")
}

func TestComputeTax_ScenarioA_NewRegime(t *testing.T) {
	engine := NewEngine()

	res := engine.ComputeTax(d("1500000"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)

	assertDecimal(t, "1450000", res.TaxableIncome, "taxable income")
	assertDecimal(t, "140000", res.GrossTax, "gross tax")
	assertDecimal(t, "0", res.Rebate, "rebate")
	assertDecimal(t, "140000", res.NetTax, "net tax")
	assertDecimal(t, "5600", res.CessAmount, "cess")
	assertDecimal(t, "145600", res.TotalTax, "total tax")
	assert.Equal(t, "9.7067", res.EffectiveRatePercent.StringFixed(4))

	require.Len(t, res.Slabs, 5, "Walk should stop inside the 20% slab")
	want := []string{"0", "15000", "30000", "45000", "50000"}
	for i, line := range res.Slabs {
		assertDecimal(t, want[i], line.Tax, fmt.Sprintf("slab %d tax", i))
	}
	assertDecimal(t, "250000", res.Slabs[4].Taxed, "income in 20% slab")
}

func TestComputeTax_ScenarioB_OldRegimeFullRebate(t *testing.T) {
	engine := NewEngine()

	res := engine.ComputeTax(d("600000"), d("150000"), domain.RegimeOld, domain.AgeNormal)

	assertDecimal(t, "400000", res.TaxableIncome, "taxable income")
	assertDecimal(t, "7500", res.GrossTax, "gross tax")
	assertDecimal(t, "7500", res.Rebate, "rebate")
	assertDecimal(t, "0", res.NetTax, "net tax")
	assertDecimal(t, "0", res.TotalTax, "total tax")
	assertDecimal(t, "0", res.EffectiveRatePercent, "effective rate")
}

func TestComputeTax_ZeroIncome(t *testing.T) {
	engine := NewEngine()

	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		for _, age := range []domain.AgeBracket{domain.AgeNormal, domain.AgeSenior, domain.AgeSuperSenior} {
			res := engine.ComputeTax(decimal.Zero, decimal.Zero, regime, age)
			assert.True(t, res.TaxableIncome.IsZero(), "%s/%s taxable", regime, age)
			assert.True(t, res.TotalTax.IsZero(), "%s/%s total", regime, age)
			assert.True(t, res.EffectiveRatePercent.IsZero(), "%s/%s effective rate", regime, age)
			assert.Empty(t, res.Slabs)
		}
	}
}

func TestComputeTax_NewRegimeRebateCliff(t *testing.T) {
	engine := NewEngine()

	atLimit := engine.ComputeTax(d("750000"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	assertDecimal(t, "700000", atLimit.TaxableIncome, "taxable at limit")
	assertDecimal(t, "25000", atLimit.GrossTax, "gross tax at limit")
	assertDecimal(t, "25000", atLimit.Rebate, "rebate at limit")
	assertDecimal(t, "0", atLimit.TotalTax, "total at limit")

	above := engine.ComputeTax(d("750001"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	assertDecimal(t, "700001", above.TaxableIncome, "taxable above limit")
	assertDecimal(t, "25000.1", above.GrossTax, "gross tax above limit")
	assertDecimal(t, "0", above.Rebate, "rebate above limit")
	assertDecimal(t, "1000.004", above.CessAmount, "cess above limit")
	assertDecimal(t, "26000.104", above.TotalTax, "total above limit")
}

func TestComputeTax_OldRegimeRebateCliff(t *testing.T) {
	engine := NewEngine()

	atLimit := engine.ComputeTax(d("550000"), decimal.Zero, domain.RegimeOld, domain.AgeNormal)
	assertDecimal(t, "500000", atLimit.TaxableIncome, "taxable at limit")
	assertDecimal(t, "12500", atLimit.GrossTax, "gross tax at limit")
	assertDecimal(t, "12500", atLimit.Rebate, "rebate is min(grossTax, 12500)")
	assertDecimal(t, "0", atLimit.NetTax, "net tax at limit")

	above := engine.ComputeTax(d("550001"), decimal.Zero, domain.RegimeOld, domain.AgeNormal)
	assertDecimal(t, "12500.2", above.GrossTax, "gross tax above limit")
	assertDecimal(t, "0", above.Rebate, "no rebate above limit")
	assertDecimal(t, "13000.208", above.TotalTax, "total above limit")
}

func TestComputeTax_OldRegimeAgeBrackets(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		age   domain.AgeBracket
		total string
	}{
		{domain.AgeNormal, "117000"},      // 12,500 + 1,00,000 + 4% cess
		{domain.AgeSenior, "114400"},      // 10,000 + 1,00,000 + 4% cess
		{domain.AgeSuperSenior, "104000"}, // 1,00,000 + 4% cess
	}
	for _, tt := range tests {
		t.Run(string(tt.age), func(t *testing.T) {
			res := engine.ComputeTax(d("1050000"), decimal.Zero, domain.RegimeOld, tt.age)
			assertDecimal(t, "1000000", res.TaxableIncome, "taxable")
			assertDecimal(t, tt.total, res.TotalTax, "total")
		})
	}
}

func TestComputeTax_NewRegimeIgnoresDeductionsAndAge(t *testing.T) {
	engine := NewEngine()

	base := engine.ComputeTax(d("1200000"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	withDeductions := engine.ComputeTax(d("1200000"), d("300000"), domain.RegimeNew, domain.AgeSuperSenior)

	if diff := cmp.Diff(base.TotalTax, withDeductions.TotalTax, decimalEqual); diff != "" {
		t.Errorf("new regime total changed with deductions/age (-want +got):\n%s", diff)
	}
}

func TestComputeTax_StandardDeductionThreshold(t *testing.T) {
	engine := NewEngine()

	at := engine.ComputeTax(d("50000"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	assertDecimal(t, "50000", at.TaxableIncome, "no standard deduction at exactly 50,000")

	above := engine.ComputeTax(d("50001"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	assertDecimal(t, "1", above.TaxableIncome, "standard deduction above 50,000")

	oldRegime := engine.ComputeTax(d("200000"), d("120000"), domain.RegimeOld, domain.AgeNormal)
	assertDecimal(t, "30000", oldRegime.TaxableIncome, "applied after deductions in old regime")
}

func TestComputeTax_NegativeInputsClamped(t *testing.T) {
	engine := NewEngine()

	neg := engine.ComputeTax(d("-100"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)
	assert.True(t, neg.GrossIncome.IsZero())
	assert.True(t, neg.TotalTax.IsZero())
	assert.True(t, neg.EffectiveRatePercent.IsZero())

	negDed := engine.ComputeTax(d("1000000"), d("-5000"), domain.RegimeOld, domain.AgeNormal)
	assertDecimal(t, "950000", negDed.TaxableIncome, "negative deductions treated as zero")
	assertDecimal(t, "102500", negDed.GrossTax, "gross tax")

	huge := engine.ComputeTax(decimal.Zero, d("99999999"), domain.RegimeOld, domain.AgeNormal)
	assert.True(t, huge.TaxableIncome.IsZero(), "deductions above income clamp to zero")
}

func TestComputeTax_Monotonic(t *testing.T) {
	engine := NewEngine()

	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		for _, age := range []domain.AgeBracket{domain.AgeNormal, domain.AgeSenior, domain.AgeSuperSenior} {
			for _, ded := range []int64{0, 150000, 400000} {
				prev := decimal.Zero
				for gross := int64(0); gross <= 2500000; gross += 7919 {
					res := engine.ComputeTax(decimal.NewFromInt(gross), decimal.NewFromInt(ded), regime, age)
					if res.TotalTax.LessThan(prev) {
						t.Fatalf("%s/%s/ded=%d: total fell from %s to %s at gross %d",
							regime, age, ded, prev, res.TotalTax, gross)
					}
					prev = res.TotalTax
				}
			}
		}
	}
}

func TestComputeTax_Idempotent(t *testing.T) {
	engine := NewEngine()

	first := engine.ComputeTax(d("1834567.89"), d("212000"), domain.RegimeOld, domain.AgeSenior)
	second := engine.ComputeTax(d("1834567.89"), d("212000"), domain.RegimeOld, domain.AgeSenior)

	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("repeated computation differs (-first +second):\n%s", diff)
	}
}

func TestComputeTaxWithSlabs_InjectedTable(t *testing.T) {
	rules := domain.TaxRules{CessRate: d("0.04")}

	// Rates need not be monotonic; only bounds must ascend.
	slabs := domain.SlabTable{
		{UpperBound: d("100000"), Rate: d("0.10")},
		{Rate: d("0.05"), Unbounded: true},
	}
	res := ComputeTaxWithSlabs(domain.TaxInput{GrossIncome: d("300000"), Regime: domain.RegimeNew}, slabs, rules)

	assertDecimal(t, "20000", res.GrossTax, "gross tax")
	assertDecimal(t, "20800", res.TotalTax, "total tax")
	require.Len(t, res.Slabs, 2)
	assert.True(t, res.Slabs[1].Unbounded)
	assertDecimal(t, "200000", res.Slabs[1].Taxed, "unbounded slab takes the remainder")

	single := domain.SlabTable{{Rate: d("0.10"), Unbounded: true}}
	res = ComputeTaxWithSlabs(domain.TaxInput{GrossIncome: d("12345"), Regime: domain.RegimeNew}, single, rules)
	assertDecimal(t, "1234.5", res.GrossTax, "single unbounded slab")
}

func TestEngine_DebugLogging(t *testing.T) {
	engine := NewEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	engine.ComputeTax(d("1500000"), decimal.Zero, domain.RegimeNew, domain.AgeNormal)

	assert.Len(t, logger.lines, 6, "one line per slab walked plus a summary")
	assert.Contains(t, logger.lines[5], "total=145600.00")
}

func TestDefaultOldRegimeSlabs_SuperSeniorSkipsEmptySlab(t *testing.T) {
	st := DefaultOldRegimeSlabs(domain.AgeSuperSenior)

	require.NoError(t, st.Validate())
	assert.Len(t, st, 3)
	assertDecimal(t, "500000", st[0].UpperBound, "exemption limit")
	assertDecimal(t, "0.2", st[1].Rate, "next slab is 20%")

	assert.Len(t, DefaultOldRegimeSlabs(domain.AgeNormal), 4)
	assert.Len(t, DefaultOldRegimeSlabs(domain.AgeSenior), 4)
}
