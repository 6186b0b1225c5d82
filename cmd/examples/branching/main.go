package main

import (
	"context"
	"fmt"

	"github.com/convoflow/convoflow/pkg/engine"
	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// Conditional routing demo: queries longer than three characters go through
// the uppercase branch, shorter ones through the reverse branch; the merge
// node picks up whichever branch actually ran.
func main() {
	def := &workflow.Definition{
		Name: "branching",
		Nodes: []workflow.NodeSpec{
			{ID: "query", Type: "querynode"},
			{ID: "route", Type: "conditionalnode", Config: map[string]any{
				"operator":    "longer_than",
				"right_value": "3",
			}},
			{ID: "long", Type: "texttransformnode", Config: map[string]any{"operation": "uppercase"}},
			{ID: "short", Type: "texttransformnode", Config: map[string]any{"operation": "reverse"}},
			{ID: "merge", Type: "mergenode", Config: map[string]any{"strategy": "first_non_empty"}},
			{ID: "response", Type: "responsenode"},
		},
		Edges: []workflow.Edge{
			{Source: "query", SourceHandle: "query", Target: "route", TargetHandle: "left"},
			{Source: "route", SourceHandle: "true", Target: "long", TargetHandle: "query"},
			{Source: "route", SourceHandle: "false", Target: "short", TargetHandle: "query"},
			{Source: "long", SourceHandle: "query", Target: "merge", TargetHandle: "input1"},
			{Source: "short", SourceHandle: "query", Target: "merge", TargetHandle: "input2"},
			{Source: "merge", SourceHandle: "query", Target: "response", TargetHandle: "input_data"},
		},
	}

	eng := engine.New(engine.WithProviders(providers.NewStubBundle(nil)))

	for _, query := range []string{"ok", "hello world"} {
		result, err := eng.Execute(context.Background(), def, types.RunInput{Query: query})
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-12q -> %q\n", query, result.Output)
		for _, ev := range result.Trace {
			if ev.Status == types.NodeSkipped {
				fmt.Printf("  skipped %s (%s)\n", ev.NodeID, ev.SkipReason)
			}
		}
	}
}
