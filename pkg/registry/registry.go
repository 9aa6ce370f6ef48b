package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/blinks/pkg/catalog"
)

// Registry manages the callable actions.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]catalog.Action
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]catalog.Action),
	}
}

// NewDefault creates a registry loaded with the built-in catalog.
func NewDefault() *Registry {
	r := NewRegistry()
	for _, a := range catalog.Builtin() {
		r.actions[a.Name] = a
	}
	return r
}

// Register adds an action to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(a catalog.Action) error {
	if err := check(a); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a.Name] = a
	return nil
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (catalog.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// List returns every registered action sorted by name.
func (r *Registry) List() []catalog.Action {
	r.mu.RLock()
	out := make([]catalog.Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Protocols returns the distinct protocols of the registered actions, sorted.
func (r *Registry) Protocols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range r.List() {
		if !seen[a.Protocol] {
			seen[a.Protocol] = true
			out = append(out, a.Protocol)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// check rejects descriptors that could never produce a URL.
func check(a catalog.Action) error {
	if a.Name == "" {
		return fmt.Errorf("action missing name")
	}
	if a.Protocol == "" {
		return fmt.Errorf("action %s: missing protocol", a.Name)
	}
	if a.Template == "" {
		return fmt.Errorf("action %s: missing template", a.Name)
	}

	declared := make(map[string]bool, len(a.Params))
	for _, p := range a.Params {
		if p.Name == "" {
			return fmt.Errorf("action %s: parameter missing name", a.Name)
		}
		if p.Type == nil {
			return fmt.Errorf("action %s: parameter %s has no type", a.Name, p.Name)
		}
		if declared[p.Name] {
			return fmt.Errorf("action %s: duplicate parameter %s", a.Name, p.Name)
		}
		declared[p.Name] = true
	}
	for _, name := range catalog.Placeholders(a.Template) {
		if !declared[name] {
			return fmt.Errorf("action %s: template references undeclared parameter %s", a.Name, name)
		}
	}
	return nil
}
