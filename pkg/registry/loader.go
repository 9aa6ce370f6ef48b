package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/schema"
)

// actionDef is the file representation of a custom action.
type actionDef struct {
	Name        string     `mapstructure:"name"`
	Protocol    string     `mapstructure:"protocol"`
	Description string     `mapstructure:"description"`
	Template    string     `mapstructure:"template"`
	ViaBlinkAPI bool       `mapstructure:"via_blink_api"`
	Params      []paramDef `mapstructure:"params"`
	// LessThan holds two parameter names; the first must be below the second.
	LessThan []string `mapstructure:"less_than"`
	Prompts  []string `mapstructure:"prompts"`
}

type paramDef struct {
	Name        string `mapstructure:"name"`
	Type        string `mapstructure:"type"`
	Description string `mapstructure:"description"`
	Example     string `mapstructure:"example"`
}

// LoadFile reads custom actions from a YAML or JSON file (chosen by extension).
// A missing file yields no actions.
//
//	actions:
//	  - name: orca_swap
//	    protocol: orca
//	    template: "{base}/swap/{token}/{amount}"
//	    params:
//	      - {name: token, type: string}
//	      - {name: amount, type: positive}
func LoadFile(path string) ([]catalog.Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read actions file: %w", err)
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	items, ok := raw["actions"].([]any)
	if !ok {
		if raw["actions"] == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: actions must be a list", filepath.Base(path))
	}

	actions := make([]catalog.Action, 0, len(items))
	for i, item := range items {
		var def actionDef
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &def,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, fmt.Errorf("failed to decode action #%d: %w", i+1, err)
		}

		a, err := def.action()
		if err != nil {
			return nil, err
		}
		if err := check(a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// RegisterFile loads path and registers every action found, shadowing built-ins.
func (r *Registry) RegisterFile(path string) (int, error) {
	actions, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			return 0, err
		}
	}
	return len(actions), nil
}

func (d actionDef) action() (catalog.Action, error) {
	a := catalog.Action{
		Name:        d.Name,
		Protocol:    d.Protocol,
		Description: d.Description,
		Template:    d.Template,
		ViaBlinkAPI: d.ViaBlinkAPI,
		Prompts:     d.Prompts,
	}

	for _, p := range d.Params {
		t, err := schema.ParseType(p.Type)
		if err != nil {
			return catalog.Action{}, fmt.Errorf("action %s: parameter %s: %w", d.Name, p.Name, err)
		}
		a.Params = append(a.Params, catalog.Param{
			Name:        p.Name,
			Type:        t,
			Description: p.Description,
			Example:     p.Example,
		})
	}

	switch len(d.LessThan) {
	case 0:
	case 2:
		for _, name := range d.LessThan {
			p, ok := a.Param(name)
			if !ok || !schema.IsNumeric(p.Type) {
				return catalog.Action{}, fmt.Errorf("action %s: less_than needs numeric parameter %s", d.Name, name)
			}
		}
		a.Check = catalog.LessThan(d.LessThan[0], d.LessThan[1])
	default:
		return catalog.Action{}, fmt.Errorf("action %s: less_than takes exactly two parameters", d.Name)
	}
	return a, nil
}
