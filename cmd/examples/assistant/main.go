package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/convoflow/convoflow/pkg/engine"
	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// Retrieval-augmented assistant against live providers. Requires at least
// OPENAI_API_KEY (completions + embeddings) and QDRANT_URL; see
// providers.FromEnv for the full variable list. Credentials may live in a
// local .env file.
func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)

	bundle, err := providers.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("building providers")
	}
	if bundle.LLM == nil {
		log.Fatal().Msg("no completion backend configured; set OPENAI_API_KEY")
	}

	def := &workflow.Definition{
		Name: "assistant",
		Nodes: []workflow.NodeSpec{
			{ID: "query", Type: "querynode"},
			{ID: "kb", Type: "knowledgebaseretrievalnode", Config: map[string]any{
				"collection_name": "medusa-docs",
				"limit":           5,
			}},
			{ID: "llm", Type: "languagemodelnode", Config: map[string]any{
				"service":     "openai",
				"model":       "gpt-4o-mini",
				"temperature": 0.3,
			}},
			{ID: "response", Type: "responsenode"},
		},
		Edges: []workflow.Edge{
			{Source: "query", SourceHandle: "query", Target: "kb", TargetHandle: "query"},
			{Source: "query", SourceHandle: "query", Target: "llm", TargetHandle: "query"},
			{Source: "kb", SourceHandle: "response", Target: "llm", TargetHandle: "context"},
			{Source: "llm", SourceHandle: "response", Target: "response", TargetHandle: "input_data"},
		},
	}

	eng := engine.New(
		engine.WithProviders(bundle),
		engine.WithLogger(log),
		engine.WithDefaultTimeout(60*time.Second),
	)

	query := "How do I configure shipping options?"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	result, err := eng.Execute(context.Background(), def, types.RunInput{Query: query})
	if err != nil {
		log.Fatal().Err(err).Str("run_id", result.RunID).Msg("run failed")
	}

	fmt.Println(result.Output)
}
