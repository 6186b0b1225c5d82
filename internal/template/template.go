// Package template implements the {{name}} placeholder interpolation used by
// node configuration strings (API URLs, request bodies, prompt fragments).
package template

import (
	"fmt"
	"strings"
)

// Render replaces every {{name}} placeholder with the corresponding value.
// Unknown placeholders are left untouched so misconfigured templates stay
// visible in the output instead of silently vanishing.
func Render(s string, values map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	out := s
	for name, value := range values {
		out = strings.ReplaceAll(out, "{{"+name+"}}", toString(value))
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
