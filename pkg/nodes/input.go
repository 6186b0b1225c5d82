package nodes

import (
	"context"
	"strings"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// QueryNode is the entry point binding the run's user message into the
// graph. The scheduler seeds it with the run input; the configured query is
// only a fallback for editor test runs.
type QueryNode struct{}

type queryConfig struct {
	Query string `mapstructure:"query"`
}

func (n *QueryNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "querynode",
		Outputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText},
		},
	}
}

func (n *QueryNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	var cfg queryConfig
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	query := strings.TrimSpace(req.Run.Query)
	if query == "" {
		query = strings.TrimSpace(cfg.Query)
	}
	return result(map[string]any{"query": query}), nil
}

// TextInputNode emits a fixed text value configured in the editor.
type TextInputNode struct{}

type textInputConfig struct {
	Text string `mapstructure:"text"`
}

func (n *TextInputNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "textinputnode",
		Outputs: []workflow.HandleSpec{
			{Name: "text", Kind: workflow.KindText},
		},
	}
}

func (n *TextInputNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	var cfg textInputConfig
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	return result(map[string]any{"text": cfg.Text}), nil
}
