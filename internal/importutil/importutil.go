// Package importutil holds the helpers shared by the schema importers:
// warning collection, YAML value normalization and type name sanitizing.
package importutil

import (
	"fmt"
	"strings"
)

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

// Report is the Diag implementation importers append to.
type Report struct {
	warnings []string
}

func (r *Report) HasWarnings() bool  { return len(r.warnings) > 0 }
func (r *Report) Warnings() []string { return append([]string(nil), r.warnings...) }

// Warnf records a formatted warning.
func (r *Report) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Strict returns an error naming the first warning, or nil when there is
// none. prefix is the importer name used in the message.
func (r *Report) Strict(prefix string) error {
	if len(r.warnings) == 0 {
		return nil
	}
	if len(r.warnings) == 1 {
		return fmt.Errorf("%s: strict import: %s", prefix, r.warnings[0])
	}
	return fmt.Errorf("%s: strict import: %s (and %d more warnings)", prefix, r.warnings[0], len(r.warnings)-1)
}

// StringMap converts a decoded YAML document into JSON-shaped values. Maps
// with non-string keys drop those keys. It returns nil when v is not a map.
func StringMap(v any) map[string]any {
	m, _ := normalize(v).(map[string]any)
	return m
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}

// RequiredNames returns the string entries of a schema's required list.
func RequiredNames(node map[string]any) []string {
	switch req := node["required"].(type) {
	case []string:
		return append([]string(nil), req...)
	case []any:
		names := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

// TypeName turns a definition or component key into a valid GraphQL name:
// characters outside [_A-Za-z0-9] become underscores and a leading digit
// gets an underscore prefix.
func TypeName(key string) string {
	name := strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, key)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "_" + name
	}
	return name
}
