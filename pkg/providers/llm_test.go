package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/convoflow/convoflow/pkg/types"
)

// fakeModel records the messages it was called with and replies with a fixed
// string.
type fakeModel struct {
	reply    string
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, opts...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func TestChatLLMRoutesByService(t *testing.T) {
	openaiModel := &fakeModel{reply: "from openai"}
	groqModel := &fakeModel{reply: "from groq"}

	router := NewChatLLM().
		Register("openai", openaiModel).
		Register("groq", groqModel)

	out, err := router.Complete(context.Background(), CompletionRequest{Service: "groq", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "from groq", out)

	// Empty service falls back to the first registered backend.
	out, err = router.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "from openai", out)
}

func TestChatLLMUnknownService(t *testing.T) {
	router := NewChatLLM().Register("openai", &fakeModel{reply: "x"})
	_, err := router.Complete(context.Background(), CompletionRequest{Service: "ollama", Prompt: "hi"})
	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "ollama", provErr.Provider)
}

func TestChatLLMBuildsMessageSequence(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	router := NewChatLLM().Register("openai", model)

	_, err := router.Complete(context.Background(), CompletionRequest{
		System: "Be helpful.",
		Prompt: "current question",
		History: []types.Message{
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "second"},
		},
	})
	require.NoError(t, err)

	require.Len(t, model.messages, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[3].Role)
}
