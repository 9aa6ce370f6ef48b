package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/schema"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, err }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// CatalogMarkdown lists actions grouped by protocol, in the order given.
func CatalogMarkdown(actions []catalog.Action) string {
	groups := make(map[string][]catalog.Action)
	var protocols []string
	for _, a := range actions {
		if _, seen := groups[a.Protocol]; !seen {
			protocols = append(protocols, a.Protocol)
		}
		groups[a.Protocol] = append(groups[a.Protocol], a)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Actions (%d)\n", len(actions))
	for _, p := range protocols {
		fmt.Fprintf(&b, "\n## %s\n", p)
		for _, a := range groups[p] {
			fmt.Fprintf(&b, "\n### `%s`\n\n%s\n", a.Name, a.Description)
			if len(a.Params) == 0 {
				continue
			}
			b.WriteString("\n| Parameter | Type | Description |\n|---|---|---|\n")
			for _, param := range a.Params {
				fmt.Fprintf(&b, "| `%s` | %s | %s |\n", param.Name, typeLabel(param.Type), cell(param.Description))
			}
		}
	}
	return b.String()
}

// typeLabel names a parameter type for a table cell.
func typeLabel(t schema.Type) string {
	if e, ok := t.(*schema.EnumType); ok {
		return "one of " + strings.Join(e.Values(), ", ")
	}
	return cell(t.Name())
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
