package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalOperators(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]any
		left    string
		verdict bool
	}{
		{"equals match", map[string]any{"operator": "equals", "right_value": "hello"}, "hello", true},
		{"equals case-insensitive by default", map[string]any{"operator": "equals", "right_value": "HELLO"}, "hello", true},
		{"equals case-sensitive", map[string]any{"operator": "equals", "right_value": "HELLO", "case_sensitive": true}, "hello", false},
		{"contains", map[string]any{"operator": "contains", "right_value": "billing"}, "a billing question", true},
		{"contains miss", map[string]any{"operator": "contains", "right_value": "refund"}, "a billing question", false},
		{"starts_with", map[string]any{"operator": "starts_with", "right_value": "how"}, "How do I ship?", true},
		{"ends_with", map[string]any{"operator": "ends_with", "right_value": "?"}, "How do I ship?", true},
		{"greater_than", map[string]any{"operator": "greater_than", "right_value": "10"}, "42", true},
		{"less_than", map[string]any{"operator": "less_than", "right_value": "10"}, "42", false},
		{"longer_than true", map[string]any{"operator": "longer_than", "right_value": "3"}, "hello", true},
		{"longer_than false", map[string]any{"operator": "longer_than", "right_value": "3"}, "ok", false},
	}

	node := &ConditionalNode{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := node.Execute(context.Background(), Request{
				Config: tt.config,
				Inputs: map[string]any{"left": tt.left},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, res.Outputs["condition"])

			if tt.verdict {
				assert.Equal(t, tt.left, res.Outputs["true"])
				assert.NotContains(t, res.Outputs, "false")
			} else {
				assert.Equal(t, tt.left, res.Outputs["false"])
				assert.NotContains(t, res.Outputs, "true")
			}
		})
	}
}

func TestConditionalRightInputOverridesConfig(t *testing.T) {
	node := &ConditionalNode{}
	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"operator": "equals", "right_value": "config"},
		Inputs: map[string]any{"left": "wired", "right": "wired"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, res.Outputs["condition"])
}

func TestConditionalEvaluationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		left   string
	}{
		{"unknown operator", map[string]any{"operator": "matches"}, "x"},
		{"non-numeric left", map[string]any{"operator": "greater_than", "right_value": "10"}, "abc"},
		{"non-numeric right", map[string]any{"operator": "less_than", "right_value": "ten"}, "5"},
		{"non-numeric length limit", map[string]any{"operator": "longer_than", "right_value": "many"}, "hello"},
	}

	node := &ConditionalNode{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := node.Execute(context.Background(), Request{
				Config: tt.config,
				Inputs: map[string]any{"left": tt.left},
			})
			var evalErr *EvaluationError
			require.ErrorAs(t, err, &evalErr)
		})
	}
}
