package catalog

import (
	"sort"

	"github.com/aretw0/blinks/pkg/schema"
)

// Builtin returns the built-in action catalog sorted by name.
// The returned slice is freshly allocated; callers may modify it.
func Builtin() []Action {
	var all []Action
	for _, group := range [][]Action{
		driftActions(),
		jupiterActions(),
		lendingActions(),
		liquidityActions(),
	} {
		all = append(all, group...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func str(name, description, example string) Param {
	return Param{Name: name, Type: schema.String(), Description: description, Example: example}
}

func enum(name, description string, values ...string) Param {
	return Param{Name: name, Type: schema.Enum(values...), Description: description, Example: values[0]}
}

func num(name string, t schema.Type, description, example string) Param {
	return Param{Name: name, Type: t, Description: description, Example: example}
}

func positive(name, description, example string) Param {
	return num(name, schema.Positive(), description, example)
}

func side(description string) Param {
	return enum("position_type", description, "long", "short")
}
