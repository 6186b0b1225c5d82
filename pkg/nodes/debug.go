package nodes

import (
	"context"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// DebugNode passes its input through unchanged and logs a preview, so a
// workflow author can inspect intermediate values without altering them.
type DebugNode struct{}

type debugConfig struct {
	Label string `mapstructure:"label"`
}

const debugPreviewLimit = 200

func (n *DebugNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "debugnode",
		Inputs: []workflow.HandleSpec{
			{Name: "input_data", Kind: workflow.KindAny, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "output_data", Kind: workflow.KindAny},
		},
	}
}

func (n *DebugNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	cfg := debugConfig{Label: "debug"}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	value := req.Inputs["input_data"]
	preview := asString(value)
	truncated := false
	if len(preview) > debugPreviewLimit {
		preview = preview[:debugPreviewLimit]
		truncated = true
	}

	req.Log.Info().
		Str("label", cfg.Label).
		Str("preview", preview).
		Bool("truncated", truncated).
		Msg("debug node value")

	effect := types.SideEffect{
		Kind: "debug",
		Detail: map[string]any{
			"label":   cfg.Label,
			"preview": preview,
		},
	}
	return result(map[string]any{"output_data": value}, effect), nil
}
