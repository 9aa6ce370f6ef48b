package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBlinkAPI wraps action URLs that must go through the Blink API.
	DefaultBlinkAPI = "https://api.dial.to/v1/blink"
	// DefaultBinID is the fallback identifier appended by actions that need one.
	DefaultBinID = "6874794c-513e-456f-801f-5957a82e068e"
)

// Endpoints resolves the hosts an action URL is formatted against.
type Endpoints struct {
	// Bases overrides the base URL per protocol.
	Bases map[string]string
	// BlinkAPI overrides DefaultBlinkAPI.
	BlinkAPI string
	// BinID overrides DefaultBinID.
	BinID string
}

// Base returns the base URL of a protocol, without a trailing slash.
func (e Endpoints) Base(protocol string) string {
	if b := e.Bases[protocol]; b != "" {
		return strings.TrimRight(b, "/")
	}
	return "https://" + protocol + ".dial.to"
}

func (e Endpoints) blinkAPI() string {
	if e.BlinkAPI != "" {
		return e.BlinkAPI
	}
	return DefaultBlinkAPI
}

func (e Endpoints) binID() string {
	if e.BinID != "" {
		return e.BinID
	}
	return DefaultBinID
}

// BuildURL formats the action template with params.
// Params must already satisfy Validate; a value that fails to format is an error.
func (a Action) BuildURL(params map[string]any, ep Endpoints) (string, error) {
	var (
		b       strings.Builder
		inQuery bool
		rest    = a.Template
	)

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		literal := rest[:open]
		if strings.IndexByte(literal, '?') >= 0 {
			inQuery = true
		}
		b.WriteString(literal)

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("template %q: unterminated placeholder", a.Template)
		}
		name := rest[open+1 : open+end]
		rest = rest[open+end+1:]

		value, err := a.placeholder(name, params, ep)
		if err != nil {
			return "", err
		}
		switch {
		case name == "base":
			b.WriteString(value)
		case inQuery:
			b.WriteString(url.QueryEscape(value))
		default:
			b.WriteString(url.PathEscape(value))
		}
	}

	built := b.String()
	if _, err := url.Parse(built); err != nil {
		return "", fmt.Errorf("action %s: %w", a.Name, err)
	}
	if a.ViaBlinkAPI {
		return ep.blinkAPI() + "?apiUrl=" + url.QueryEscape(built), nil
	}
	return built, nil
}

func (a Action) placeholder(name string, params map[string]any, ep Endpoints) (string, error) {
	switch name {
	case "base":
		return ep.Base(a.Protocol), nil
	case "bin":
		return ep.binID(), nil
	}

	p, ok := a.Param(name)
	if !ok {
		return "", fmt.Errorf("template %q references undeclared parameter %q", a.Template, name)
	}
	if p.Type == nil {
		return "", fmt.Errorf("parameter %q has no type", name)
	}
	value, ok := params[name]
	if !ok {
		return "", fmt.Errorf("parameter %q: required", name)
	}
	s, err := p.Type.Format(value)
	if err != nil {
		return "", fmt.Errorf("parameter %q: %w", name, err)
	}
	return s, nil
}

// Placeholders lists the parameter names referenced by a template, in order.
func Placeholders(template string) []string {
	var names []string
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			return names
		}
		end := strings.IndexByte(template[open:], '}')
		if end < 0 {
			return names
		}
		name := template[open+1 : open+end]
		if name != "base" && name != "bin" {
			names = append(names, name)
		}
		template = template[open+end+1:]
	}
}
