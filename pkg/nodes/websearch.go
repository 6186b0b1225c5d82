package nodes

import (
	"context"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// WebSearchNode queries the configured web search provider and emits a
// plain-text digest of the results.
type WebSearchNode struct{}

type webSearchConfig struct {
	MaxResults int `mapstructure:"max_results"`
}

func (n *WebSearchNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "websearchnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "response", Kind: workflow.KindText},
		},
	}
}

func (n *WebSearchNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.Search == nil {
		return types.NodeResult{}, providers.NewError("websearch", errors.New("no web search provider configured"))
	}

	cfg := webSearchConfig{MaxResults: 5}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	if cfg.MaxResults < 1 {
		cfg.MaxResults = 1
	} else if cfg.MaxResults > 10 {
		cfg.MaxResults = 10
	}

	query := trimmedString(req.Inputs["query"])
	if query == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "no search query provided"}
	}

	digest, err := req.Providers.Search.Search(ctx, query, cfg.MaxResults)
	if err != nil {
		return types.NodeResult{}, err
	}
	if digest == "" {
		digest = "No results found for: " + query
	}

	return result(map[string]any{"response": digest}), nil
}
