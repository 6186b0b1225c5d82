package nodes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// ConditionalNode evaluates a comparison between the left input and either
// the right input or a configured literal, then emits the left value on
// exactly one of its true/false handles. The scheduler prunes whatever hangs
// off the untaken handle.
type ConditionalNode struct{}

type conditionalConfig struct {
	Operator      string `mapstructure:"operator"`
	RightValue    string `mapstructure:"right_value"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
}

func (n *ConditionalNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "conditionalnode",
		Inputs: []workflow.HandleSpec{
			{Name: "left", Kind: workflow.KindText, Required: true},
			{Name: "right", Kind: workflow.KindText},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "true", Kind: workflow.KindText},
			{Name: "false", Kind: workflow.KindText},
			{Name: "condition", Kind: workflow.KindBoolean},
		},
	}
}

func (n *ConditionalNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	cfg := conditionalConfig{Operator: "contains"}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	left := asString(req.Inputs["left"])
	right := cfg.RightValue
	if v, ok := req.Inputs["right"]; ok {
		right = asString(v)
	}

	verdict, err := evaluate(cfg.Operator, left, right, cfg.CaseSensitive)
	if err != nil {
		return types.NodeResult{}, err
	}

	// Only the taken branch handle is emitted; the other side stays unbound
	// so downstream-only nodes get pruned.
	outputs := map[string]any{"condition": verdict}
	if verdict {
		outputs["true"] = left
	} else {
		outputs["false"] = left
	}
	return result(outputs), nil
}

func evaluate(operator, left, right string, caseSensitive bool) (bool, error) {
	cmpLeft, cmpRight := left, right
	if !caseSensitive {
		cmpLeft = strings.ToLower(left)
		cmpRight = strings.ToLower(right)
	}

	switch operator {
	case "equals":
		return cmpLeft == cmpRight, nil
	case "contains":
		return strings.Contains(cmpLeft, cmpRight), nil
	case "starts_with":
		return strings.HasPrefix(cmpLeft, cmpRight), nil
	case "ends_with":
		return strings.HasSuffix(cmpLeft, cmpRight), nil
	case "greater_than", "less_than":
		l, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
		if err != nil {
			return false, &EvaluationError{Detail: fmt.Sprintf("left operand %q is not numeric", left), Err: err}
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
		if err != nil {
			return false, &EvaluationError{Detail: fmt.Sprintf("right operand %q is not numeric", right), Err: err}
		}
		if operator == "greater_than" {
			return l > r, nil
		}
		return l < r, nil
	case "longer_than":
		limit, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
		if err != nil {
			return false, &EvaluationError{Detail: fmt.Sprintf("length limit %q is not numeric", right), Err: err}
		}
		return float64(len(left)) > limit, nil
	default:
		return false, &EvaluationError{Detail: fmt.Sprintf("unknown operator %q", operator)}
	}
}
