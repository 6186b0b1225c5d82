package providers

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"

	"github.com/convoflow/convoflow/pkg/types"
)

// ChatLLM routes completion requests to langchaingo chat models, one per
// configured service.
type ChatLLM struct {
	models         map[string]llms.Model
	defaultService string
}

// NewChatLLM builds a router over the given models. The first registered
// service becomes the default unless overridden with SetDefault.
func NewChatLLM() *ChatLLM {
	return &ChatLLM{models: make(map[string]llms.Model)}
}

// Register adds a backend under a service name ("openai", "groq", "ollama").
func (c *ChatLLM) Register(service string, model llms.Model) *ChatLLM {
	if c.defaultService == "" {
		c.defaultService = service
	}
	c.models[service] = model
	return c
}

// SetDefault picks the service used when a request names none.
func (c *ChatLLM) SetDefault(service string) *ChatLLM {
	c.defaultService = service
	return c
}

// Complete sends system prompt, conversation history and the resolved prompt
// to the selected backend.
func (c *ChatLLM) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	service := req.Service
	if service == "" {
		service = c.defaultService
	}
	model, ok := c.models[service]
	if !ok {
		return "", NewError(service, errors.Errorf("service %q is not configured", service))
	}

	msgs := buildMessages(req)
	opts := []llms.CallOption{}
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}

	resp, err := model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return "", NewError(service, err)
	}
	if len(resp.Choices) == 0 {
		return "", NewError(service, errors.New("model returned no choices"))
	}
	return resp.Choices[0].Content, nil
}

func buildMessages(req CompletionRequest) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, len(req.History)+2)
	if req.System != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.History {
		msgs = append(msgs, llms.TextParts(historyRole(m), m.Content))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))
	return msgs
}

func historyRole(m types.Message) llms.ChatMessageType {
	switch m.Role {
	case "assistant", "ai":
		return llms.ChatMessageTypeAI
	case "system":
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}
