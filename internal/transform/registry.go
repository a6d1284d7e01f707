package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, used by the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RequestTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_date", createSetRetirementMonth)
	registry.Register("add_contribution", createAddContribution)
	registry.Register("remove_contribution", createRemoveContributions)
	registry.Register("scale_contributions", createScaleContributions)
	registry.Register("set_access_regime", createSetAccessRegime)
	registry.Register("set_special_conditions", createSetSpecialConditions)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RequestTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
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

// ParseTransformSpec parses "name:key=value,key=value".
// Example: "add_contribution:month=03/2010,amount=1200.50"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RequestTransform, error) {
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

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]RequestTransform, error) {
	transforms := make([]RequestTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func requireMonth(params map[string]string, transform, key string) (domain.YearMonth, error) {
	raw, err := requireParam(params, transform, key)
	if err != nil {
		return domain.YearMonth{}, err
	}
	ym, err := domain.ParseYearMonth(raw)
	if err != nil {
		return domain.YearMonth{}, fmt.Errorf("invalid %s value, expected MM/YYYY: %w", key, err)
	}
	return ym, nil
}

func createPostponeRetirement(params map[string]string) (RequestTransform, error) {
	monthsStr, err := requireParam(params, "postpone_retirement", "months")
	if err != nil {
		return nil, err
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &PostponeRetirement{Months: months}, nil
}

func createSetRetirementMonth(params map[string]string) (RequestTransform, error) {
	month, err := requireMonth(params, "set_retirement_date", "date")
	if err != nil {
		return nil, err
	}
	return &SetRetirementMonth{Month: month}, nil
}

func createAddContribution(params map[string]string) (RequestTransform, error) {
	month, err := requireMonth(params, "add_contribution", "month")
	if err != nil {
		return nil, err
	}
	amountStr, err := requireParam(params, "add_contribution", "amount")
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}

	rec := domain.ContributionRecord{Month: month, Amount: amount, Employer: params["employer"]}
	if rec.Employer == "" {
		rec.Employer = "WHAT-IF"
	}
	if raw, ok := params["regime"]; ok {
		regime, err := domain.ParseRegime(raw)
		if err != nil {
			return nil, err
		}
		rec.Regime = regime
	}
	return &AddContribution{Record: rec}, nil
}

func createRemoveContributions(params map[string]string) (RequestTransform, error) {
	month, err := requireMonth(params, "remove_contribution", "month")
	if err != nil {
		return nil, err
	}
	return &RemoveContributions{Month: month}, nil
}

func createScaleContributions(params map[string]string) (RequestTransform, error) {
	factorStr, err := requireParam(params, "scale_contributions", "factor")
	if err != nil {
		return nil, err
	}
	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}
	return &ScaleContributions{Factor: factor}, nil
}

func createSetAccessRegime(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam(params, "set_access_regime", "regime")
	if err != nil {
		return nil, err
	}
	regime, err := domain.ParseRegime(raw)
	if err != nil {
		return nil, err
	}
	return &SetAccessRegime{Regime: regime}, nil
}

func createSetSpecialConditions(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam(params, "set_special_conditions", "enabled")
	if err != nil {
		return nil, err
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid enabled value: %w", err)
	}
	return &SetSpecialConditions{Enabled: enabled}, nil
}
