package catalog

import (
	"github.com/aretw0/blinks/pkg/schema"
)

// Protocols with built-in actions.
const (
	ProtocolDrift    = "drift"
	ProtocolJupiter  = "jupiter"
	ProtocolKamino   = "kamino"
	ProtocolLulo     = "lulo"
	ProtocolMarginFi = "marginfi"
	ProtocolMeteora  = "meteora"
	ProtocolRaydium  = "raydium"
	ProtocolSave     = "save"
)

// Param describes one named action parameter.
type Param struct {
	Name        string      `json:"name"`
	Type        schema.Type `json:"-"`
	Description string      `json:"description"`
	Example     string      `json:"example,omitempty"`
}

// TypeName returns the schema type name, or "" when no type is set.
func (p Param) TypeName() string {
	if p.Type == nil {
		return ""
	}
	return p.Type.Name()
}

// CheckFunc validates relations between parameters once each one is individually valid.
type CheckFunc func(params map[string]any) error

// Action is the descriptor of a single callable action.
type Action struct {
	Name        string    `json:"name"`
	Protocol    string    `json:"protocol"`
	Description string    `json:"description"`
	Params      []Param   `json:"params"`
	Template    string    `json:"template"`
	ViaBlinkAPI bool      `json:"via_blink_api,omitempty"`
	Check       CheckFunc `json:"-"`
	Prompts     []string  `json:"prompts,omitempty"`
}

// Schema returns the validation schema of the action parameters.
func (a Action) Schema() schema.Schema {
	s := make(schema.Schema, len(a.Params))
	for _, p := range a.Params {
		s[p.Name] = p.Type
	}
	return s
}

// Param looks up a parameter by name.
func (a Action) Param(name string) (Param, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks params against the schema and then the cross-field rule.
// Failures are reported as *schema.AggregateError.
func (a Action) Validate(params map[string]any) error {
	if err := schema.Validate(a.Schema(), params); err != nil {
		return err
	}
	if a.Check == nil {
		return nil
	}
	if err := a.Check(params); err != nil {
		return &schema.AggregateError{Errors: []error{err}}
	}
	return nil
}

// LessThan requires the numeric parameter lower to be strictly below upper.
func LessThan(lower, upper string) CheckFunc {
	return func(params map[string]any) error {
		lo, err := schema.ToDecimal(params[lower])
		if err != nil {
			return &schema.ValidationError{Key: lower, Reason: err.Error(), Value: params[lower]}
		}
		hi, err := schema.ToDecimal(params[upper])
		if err != nil {
			return &schema.ValidationError{Key: upper, Reason: err.Error(), Value: params[upper]}
		}
		if !lo.LessThan(hi) {
			return &schema.ValidationError{Key: lower, Reason: "must be less than " + upper, Value: params[lower]}
		}
		return nil
	}
}

// PercentageWhen bounds field to (0, 100] when selector equals value.
func PercentageWhen(selector, value, field string) CheckFunc {
	pct := schema.Percentage()
	return func(params map[string]any) error {
		if params[selector] != value {
			return nil
		}
		if err := pct.Validate(params[field]); err != nil {
			return &schema.ValidationError{
				Key:    field,
				Reason: err.Error() + " when " + selector + " is " + value,
				Value:  params[field],
			}
		}
		return nil
	}
}
