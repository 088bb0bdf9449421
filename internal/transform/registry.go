package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	caps      Caps
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string, caps Caps) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
// caps bounds the deduction transforms it creates.
func NewTransformRegistry(caps Caps) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		caps:      caps,
	}

	registry.Register("add_deduction", createAddDeduction)
	registry.Register("max_deduction", createMaxDeduction)
	registry.Register("remove_deduction", createRemoveDeduction)
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_age_bracket", createSetAgeBracket)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params, r.caps)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_deduction:section=80C,amount=50000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createAddDeduction(params map[string]string, caps Caps) (ProfileTransform, error) {
	section, ok := params["section"]
	if !ok {
		return nil, fmt.Errorf("add_deduction requires 'section' parameter")
	}
	amount, err := amountParam(params, "add_deduction", "amount")
	if err != nil {
		return nil, err
	}
	return &AddDeduction{Section: section, Amount: amount, Caps: caps}, nil
}

func createMaxDeduction(params map[string]string, caps Caps) (ProfileTransform, error) {
	section, ok := params["section"]
	if !ok {
		return nil, fmt.Errorf("max_deduction requires 'section' parameter")
	}
	return &MaxDeduction{Section: section, Caps: caps}, nil
}

func createRemoveDeduction(params map[string]string, _ Caps) (ProfileTransform, error) {
	section, ok := params["section"]
	if !ok {
		return nil, fmt.Errorf("remove_deduction requires 'section' parameter")
	}
	return &RemoveDeduction{Section: section}, nil
}

func createAdjustIncome(params map[string]string, _ Caps) (ProfileTransform, error) {
	delta, err := amountParam(params, "adjust_income", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Delta: delta}, nil
}

func createScaleIncome(params map[string]string, _ Caps) (ProfileTransform, error) {
	factor, err := decimalParam(params, "scale_income", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Factor: factor}, nil
}

func createSetAgeBracket(params map[string]string, _ Caps) (ProfileTransform, error) {
	raw, ok := params["bracket"]
	if !ok {
		return nil, fmt.Errorf("set_age_bracket requires 'bracket' parameter")
	}
	bracket, err := domain.ParseAgeBracket(raw)
	if err != nil {
		return nil, err
	}
	return &SetAgeBracket{Bracket: bracket}, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// amountParam parses a rupee amount the way the CLI flags do (15L, 2.5cr, 50k,
// 1,50,000). A leading minus sign is allowed; transforms validate the sign.
func amountParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	raw = strings.TrimSpace(raw)
	negative := strings.HasPrefix(raw, "-")
	v, err := domain.ParseAmount(strings.TrimPrefix(raw, "-"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}
