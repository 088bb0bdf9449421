package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func defaultCaps() Caps {
	return Caps(calculation.DefaultRules().DeductionCaps)
}

func baseProfile() *domain.TaxProfile {
	return &domain.TaxProfile{
		Name:        "base",
		GrossIncome: decimal.NewFromInt(1200000),
		Deductions:  domain.DeductionSet{"80C": decimal.NewFromInt(100000)},
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := baseProfile()
	out, err := ApplyTransforms(base, []ProfileTransform{
		&AddDeduction{Section: "80c", Amount: decimal.NewFromInt(50000), Caps: defaultCaps()},
		&AdjustIncome{Delta: decimal.NewFromInt(-200000)},
	})
	require.NoError(t, err)

	assert.True(t, out.Deductions["80C"].Equal(decimal.NewFromInt(150000)), "filled to the 80C cap")
	assert.True(t, out.GrossIncome.Equal(decimal.NewFromInt(1000000)))

	// base untouched
	assert.True(t, base.Deductions["80C"].Equal(decimal.NewFromInt(100000)))
	assert.True(t, base.GrossIncome.Equal(decimal.NewFromInt(1200000)))
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := baseProfile()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.NotSame(t, base, out)
	assert.Equal(t, base.Name, out.Name)

	_, err = ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(base, []ProfileTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")
}

func TestApplyTransforms_ValidationError(t *testing.T) {
	_, err := ApplyTransforms(baseProfile(), []ProfileTransform{&AdjustIncome{Delta: decimal.NewFromInt(-5000000)}})
	require.Error(t, err)

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "adjust_income", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
	assert.Contains(t, err.Error(), "income would become negative")
}

func TestAddDeduction(t *testing.T) {
	base := baseProfile()

	uncapped, err := (&AddDeduction{Section: "80G", Amount: decimal.NewFromInt(500000), Caps: defaultCaps()}).Apply(base)
	require.NoError(t, err)
	assert.True(t, uncapped.Deductions["80G"].Equal(decimal.NewFromInt(500000)), "sections without a cap are not clamped")

	assert.Error(t, (&AddDeduction{Section: "80C", Amount: decimal.Zero}).Validate(base))
	assert.Error(t, (&AddDeduction{Section: " ", Amount: decimal.NewFromInt(1)}).Validate(base))

	empty := &domain.TaxProfile{Name: "e", GrossIncome: decimal.NewFromInt(1)}
	out, err := (&AddDeduction{Section: "24b", Amount: decimal.NewFromInt(200000), Caps: defaultCaps()}).Apply(empty)
	require.NoError(t, err)
	assert.True(t, out.Deductions["24B"].Equal(decimal.NewFromInt(200000)))
}

func TestAddDeduction_RejectsClaimAboveCap(t *testing.T) {
	base := baseProfile()
	ad := &AddDeduction{Section: "80C", Amount: decimal.NewFromInt(200000), Caps: defaultCaps()}

	err := ad.Validate(base)
	require.Error(t, err)
	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "add_deduction", te.TransformName)
	assert.Contains(t, err.Error(), "claim of 300000 under 80C exceeds the 150000 limit")

	out, err := ad.Apply(base)
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, base.Deductions["80C"].Equal(decimal.NewFromInt(100000)), "base untouched")

	_, err = ApplyTransforms(base, []ProfileTransform{ad})
	assert.ErrorContains(t, err, "validation failed")

	// one rupee over the senior 80D ceiling
	senior := &domain.TaxProfile{Name: "s", GrossIncome: decimal.NewFromInt(900000), AgeBracket: domain.AgeSenior}
	assert.NoError(t, (&AddDeduction{Section: "80D", Amount: decimal.NewFromInt(50000), Caps: defaultCaps()}).Validate(senior))
	assert.Error(t, (&AddDeduction{Section: "80D", Amount: decimal.NewFromInt(50001), Caps: defaultCaps()}).Validate(senior))
}

func TestDeductionTransforms_LowercaseKeys(t *testing.T) {
	var p domain.TaxProfile
	require.NoError(t, yaml.Unmarshal([]byte("name: lc\ngross_income: 1200000\ndeductions:\n  80c: 100000\n  Total: 20000\n"), &p))
	assert.Equal(t, []string{"80C", domain.DeductionTotalKey}, p.DeductionSections())

	out, err := (&MaxDeduction{Section: "80C", Caps: defaultCaps()}).Apply(&p)
	require.NoError(t, err)
	assert.Len(t, out.Deductions, 2)
	assert.True(t, out.TotalDeductions().Equal(decimal.NewFromInt(170000)), out.TotalDeductions().String())

	rd := &RemoveDeduction{Section: "total"}
	require.NoError(t, rd.Validate(&p))
	out, err = rd.Apply(&p)
	require.NoError(t, err)
	assert.Equal(t, []string{"80C"}, out.DeductionSections())
}

func TestMaxDeduction_SeniorHealthCap(t *testing.T) {
	caps := defaultCaps()
	tests := []struct {
		bracket domain.AgeBracket
		want    int64
	}{
		{domain.AgeNormal, 25000},
		{domain.AgeSenior, 50000},
		{domain.AgeSuperSenior, 50000},
	}
	for _, tt := range tests {
		t.Run(string(tt.bracket), func(t *testing.T) {
			p := baseProfile()
			p.AgeBracket = tt.bracket
			md := &MaxDeduction{Section: "80D", Caps: caps}
			require.NoError(t, md.Validate(p))
			out, err := md.Apply(p)
			require.NoError(t, err)
			assert.True(t, out.Deductions["80D"].Equal(decimal.NewFromInt(tt.want)), out.Deductions["80D"].String())
		})
	}
}

func TestMaxDeduction_KeepsHigherClaim(t *testing.T) {
	p := baseProfile()
	p.Deductions["80C"] = decimal.NewFromInt(400000)
	out, err := (&MaxDeduction{Section: "80C", Caps: defaultCaps()}).Apply(p)
	require.NoError(t, err)
	assert.True(t, out.Deductions["80C"].Equal(decimal.NewFromInt(400000)))

	assert.Error(t, (&MaxDeduction{Section: "80G", Caps: defaultCaps()}).Validate(p))
}

func TestRemoveDeduction(t *testing.T) {
	p := baseProfile()
	rd := &RemoveDeduction{Section: "80c"}
	require.NoError(t, rd.Validate(p))
	out, err := rd.Apply(p)
	require.NoError(t, err)
	assert.Empty(t, out.Deductions)
	assert.Len(t, p.Deductions, 1)

	assert.Error(t, (&RemoveDeduction{Section: "80D"}).Validate(p))
}

func TestScaleIncome(t *testing.T) {
	out, err := (&ScaleIncome{Factor: decimal.RequireFromString("1.10")}).Apply(baseProfile())
	require.NoError(t, err)
	assert.True(t, out.GrossIncome.Equal(decimal.NewFromInt(1320000)))
	assert.Equal(t, "Change gross income by 10.0%", (&ScaleIncome{Factor: decimal.RequireFromString("1.10")}).Description())

	assert.Error(t, (&ScaleIncome{Factor: decimal.NewFromInt(-1)}).Validate(baseProfile()))
}

func TestSetAgeBracket(t *testing.T) {
	p := baseProfile()
	age := 45
	p.Age = &age

	out, err := (&SetAgeBracket{Bracket: domain.AgeSenior}).Apply(p)
	require.NoError(t, err)
	assert.Equal(t, domain.AgeSenior, out.Bracket())
	assert.Nil(t, out.Age)
	assert.Equal(t, domain.AgeNormal, p.Bracket())

	assert.Error(t, (&SetAgeBracket{Bracket: "infant"}).Validate(p))
}

func TestTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry(defaultCaps())
	assert.Equal(t, []string{"add_deduction", "adjust_income", "max_deduction", "remove_deduction", "scale_income", "set_age_bracket"}, registry.List())

	tr, err := registry.ParseTransformSpec("add_deduction:section=80D, amount=10000")
	require.NoError(t, err)
	ad, ok := tr.(*AddDeduction)
	require.True(t, ok)
	assert.Equal(t, "80D", ad.Section)
	assert.True(t, ad.Amount.Equal(decimal.NewFromInt(10000)))

	tr, err = registry.ParseTransformSpec("adjust_income:delta=-1.5L")
	require.NoError(t, err)
	assert.True(t, tr.(*AdjustIncome).Delta.Equal(decimal.NewFromInt(-150000)))

	tr, err = registry.ParseTransformSpec("add_deduction:section=80C,amount=50k")
	require.NoError(t, err)
	assert.True(t, tr.(*AddDeduction).Amount.Equal(decimal.NewFromInt(50000)))

	tr, err = registry.ParseTransformSpec("set_age_bracket:bracket=super-senior")
	require.NoError(t, err)
	assert.Equal(t, domain.AgeSuperSenior, tr.(*SetAgeBracket).Bracket)

	errorCases := map[string]string{
		"add_deduction":                      "expected 'name:params'",
		"nope:x=1":                           "unknown transform",
		"adjust_income:delta":                "expected 'key=value'",
		"adjust_income:delta=abc":            "invalid delta value",
		"scale_income:":                      "requires 'factor'",
		"max_deduction:amount=1":             "requires 'section'",
		"remove_deduction:amount=1":          "requires 'section'",
		"set_age_bracket:bracket=toddler":    "unknown age bracket",
		"add_deduction:amount=5":             "requires 'section'",
		"add_deduction:section=80C,amount=x": "invalid amount value",
	}
	for spec, want := range errorCases {
		_, err := registry.ParseTransformSpec(spec)
		assert.ErrorContains(t, err, want, spec)
	}
}
