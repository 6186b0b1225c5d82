package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexExtraction(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		in     string
		want   string
	}{
		{"default digits", nil, "order 42 and 7", "42, 7"},
		{"single match", map[string]any{"pattern": `[a-z]+@[a-z]+\.com`}, "mail me at sam@acme.com", "sam@acme.com"},
		{"capture groups flattened", map[string]any{"pattern": `(\w+)=(\w+)`}, "a=1 b=2", "a, 1, b, 2"},
		{"case-insensitive", map[string]any{"pattern": "error", "case_sensitive": false}, "ERROR: Error in log", "ERROR, Error"},
		{"case-sensitive default", map[string]any{"pattern": "error"}, "ERROR only", ""},
		{"no match sentinel", map[string]any{"pattern": `\d+`}, "no numbers here", ""},
	}

	node := &RegexExtractorNode{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := node.Execute(context.Background(), Request{
				Config: tt.config,
				Inputs: map[string]any{"query": tt.in},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outputs["query"])
		})
	}
}

func TestRegexInvalidPattern(t *testing.T) {
	node := &RegexExtractorNode{}
	_, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"pattern": "[unclosed"},
		Inputs: map[string]any{"query": "x"},
	})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
}
