package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConcatenate(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		inputs map[string]any
		want   string
	}{
		{"both present", nil, map[string]any{"input1": "hello", "input2": "world"}, "hello world"},
		{"with separator", map[string]any{"separator": "|"}, map[string]any{"input1": "a", "input2": "b"}, "a | b"},
		{"first only", nil, map[string]any{"input1": "solo"}, "solo"},
		{"second only", nil, map[string]any{"input2": "solo"}, "solo"},
		{"whitespace counts as empty", nil, map[string]any{"input1": "  ", "input2": "kept"}, "kept"},
	}

	node := &MergeNode{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := node.Execute(context.Background(), Request{Config: tt.config, Inputs: tt.inputs})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outputs["query"])
		})
	}
}

func TestMergeFirstNonEmpty(t *testing.T) {
	node := &MergeNode{}
	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"strategy": "first_non_empty"},
		Inputs: map[string]any{"input1": "", "input2": "fallback"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.Outputs["query"])
}

func TestMergeCollect(t *testing.T) {
	node := &MergeNode{}
	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"strategy": "collect"},
		Inputs: map[string]any{"input1": "a", "input2": "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, res.Outputs["query"])
}

func TestMergeCollectSingleInput(t *testing.T) {
	node := &MergeNode{}
	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"strategy": "collect"},
		Inputs: map[string]any{"input2": "only"},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"only"}, res.Outputs["query"])
}

func TestMergeUnknownStrategy(t *testing.T) {
	node := &MergeNode{}
	_, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"strategy": "zip"},
		Inputs: map[string]any{"input1": "a"},
	})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
}
