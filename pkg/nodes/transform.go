package nodes

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// TextTransformNode applies a single string operation to its input.
type TextTransformNode struct{}

type transformConfig struct {
	Operation   string `mapstructure:"operation"`
	FindText    string `mapstructure:"find_text"`
	ReplaceText string `mapstructure:"replace_text"`
}

func (n *TextTransformNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "texttransformnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText},
		},
	}
}

func (n *TextTransformNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	cfg := transformConfig{Operation: "lowercase"}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	query := asString(req.Inputs["query"])
	var out string
	switch cfg.Operation {
	case "uppercase":
		out = strings.ToUpper(query)
	case "lowercase":
		out = strings.ToLower(query)
	case "title_case":
		out = titleCase(query)
	case "trim":
		out = strings.TrimSpace(query)
	case "replace":
		out = query
		if cfg.FindText != "" {
			out = strings.ReplaceAll(query, cfg.FindText, cfg.ReplaceText)
		}
	case "remove_spaces":
		out = strings.ReplaceAll(query, " ", "")
	case "reverse":
		out = reverse(query)
	default:
		return types.NodeResult{}, &EvaluationError{Detail: fmt.Sprintf("unknown operation %q", cfg.Operation)}
	}

	return result(map[string]any{"query": out}), nil
}

func titleCase(s string) string {
	prevSpace := true
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			prevSpace = true
			return r
		}
		if prevSpace {
			prevSpace = false
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	}, s)
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
