package nodes

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

const defaultSystemPrompt = "You are a helpful AI assistant."

// contextPromptTemplate wraps retrieved context around the user question.
const contextPromptTemplate = `Based on the following context, please answer the user's question:

Context:
%s

User Question: %s

Please provide a helpful and accurate response based on the context provided.`

// LanguageModelNode sends the resolved prompt, optional retrieved context
// and the conversation history to the configured completion backend.
type LanguageModelNode struct{}

type languageModelConfig struct {
	Service      string  `mapstructure:"service"`
	Model        string  `mapstructure:"model"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
}

func (n *LanguageModelNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "languagemodelnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
			{Name: "context", Kind: workflow.KindText},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "response", Kind: workflow.KindText},
		},
	}
}

func (n *LanguageModelNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.LLM == nil {
		return types.NodeResult{}, providers.NewError("llm", errors.New("no completion backend configured"))
	}

	cfg := languageModelConfig{
		SystemPrompt: defaultSystemPrompt,
		Temperature:  0.7,
		MaxTokens:    500,
	}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	query := trimmedString(req.Inputs["query"])
	contextText := trimmedString(req.Inputs["context"])

	prompt := query
	switch {
	case contextText != "" && query != "":
		prompt = fmt.Sprintf(contextPromptTemplate, contextText, query)
	case contextText != "":
		prompt = contextText
	}

	reply, err := req.Providers.LLM.Complete(ctx, providers.CompletionRequest{
		Service:     cfg.Service,
		Model:       cfg.Model,
		System:      cfg.SystemPrompt,
		Prompt:      prompt,
		History:     req.Run.History,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return types.NodeResult{}, err
	}

	return result(map[string]any{"response": reply}), nil
}
