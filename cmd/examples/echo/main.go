package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/convoflow/convoflow/pkg/engine"
	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// Minimal end-to-end run: query -> language model -> response, with a stub
// backend that echoes the prompt. No network access required.
func main() {
	def := &workflow.Definition{
		Name: "echo",
		Nodes: []workflow.NodeSpec{
			{ID: "query", Type: "querynode"},
			{ID: "llm", Type: "languagemodelnode"},
			{ID: "response", Type: "responsenode"},
		},
		Edges: []workflow.Edge{
			{Source: "query", SourceHandle: "query", Target: "llm", TargetHandle: "query"},
			{Source: "llm", SourceHandle: "response", Target: "response", TargetHandle: "input_data"},
		},
	}

	bundle := providers.NewStubBundle(func(_ context.Context, req providers.CompletionRequest) (string, error) {
		return "Echo: " + req.Prompt, nil
	})

	eng := engine.New(engine.WithProviders(bundle))
	result, err := eng.Execute(context.Background(), def, types.RunInput{Query: "hi"})
	if err != nil {
		panic(err)
	}

	fmt.Printf("run %s: %s\n", result.RunID, result.Status)
	fmt.Printf("output: %s\n", result.Output)
	for _, ev := range result.Trace {
		fmt.Printf("  %-10s %-20s %s\n", ev.NodeID, ev.NodeType, strings.ToUpper(string(ev.Status)))
	}
}
