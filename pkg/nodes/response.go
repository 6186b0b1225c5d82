package nodes

import (
	"context"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

const emptyResponseFallback = "No response yet"

// ResponseNode is the terminal node: whatever arrives on input_data becomes
// the run's output. Exactly one response node must exist per workflow; the
// validator enforces this.
type ResponseNode struct{}

func (n *ResponseNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type:     "responsenode",
		Terminal: true,
		Inputs: []workflow.HandleSpec{
			{Name: "input_data", Kind: workflow.KindAny, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "final_response", Kind: workflow.KindText},
		},
	}
}

func (n *ResponseNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	// Routing nodes may deliver booleans or numbers; render them as text.
	final := trimmedString(req.Inputs["input_data"])
	if final == "" {
		final = emptyResponseFallback
	}
	return result(map[string]any{"final_response": final}), nil
}
