package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		values map[string]any
		want   string
	}{
		{"single placeholder", "hello {{name}}", map[string]any{"name": "world"}, "hello world"},
		{"repeated placeholder", "{{x}}-{{x}}", map[string]any{"x": "a"}, "a-a"},
		{"unknown left intact", "id={{missing}}", map[string]any{"name": "x"}, "id={{missing}}"},
		{"non-string value", "n={{n}}", map[string]any{"n": 42}, "n=42"},
		{"nil renders empty", "v={{v}}", map[string]any{"v": nil}, "v="},
		{"no placeholders", "plain text", map[string]any{"x": "y"}, "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in, tt.values))
		})
	}
}
