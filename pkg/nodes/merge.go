package nodes

import (
	"context"
	"fmt"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// MergeNode combines whatever inputs survived pruning. It executes as long
// as at least one wired input is present (AnyInput); with every input pruned
// the scheduler prunes the merge itself.
type MergeNode struct{}

type mergeConfig struct {
	Strategy  string `mapstructure:"strategy"`
	Separator string `mapstructure:"separator"`
}

func (n *MergeNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type:     "mergenode",
		AnyInput: true,
		Inputs: []workflow.HandleSpec{
			{Name: "input1", Kind: workflow.KindAny},
			{Name: "input2", Kind: workflow.KindAny},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindAny},
		},
	}
}

func (n *MergeNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	cfg := mergeConfig{Strategy: "concatenate"}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	first, hasFirst := req.Inputs["input1"]
	second, hasSecond := req.Inputs["input2"]

	switch cfg.Strategy {
	case "concatenate":
		return result(map[string]any{
			"query": concatenate(trimmedString(first), trimmedString(second), cfg.Separator),
		}), nil
	case "first_non_empty":
		out := trimmedString(first)
		if out == "" {
			out = trimmedString(second)
		}
		return result(map[string]any{"query": out}), nil
	case "collect":
		var collected []any
		if hasFirst {
			collected = append(collected, first)
		}
		if hasSecond {
			collected = append(collected, second)
		}
		return result(map[string]any{"query": collected}), nil
	default:
		return types.NodeResult{}, &EvaluationError{Detail: fmt.Sprintf("unknown merge strategy %q", cfg.Strategy)}
	}
}

// concatenate joins the present values: a configured separator gets a space
// on both sides, otherwise a single space separates the parts.
func concatenate(a, b, separator string) string {
	switch {
	case a != "" && b != "":
		if separator != "" {
			return a + " " + separator + " " + b
		}
		return a + " " + b
	case a != "":
		return a
	default:
		return b
	}
}
