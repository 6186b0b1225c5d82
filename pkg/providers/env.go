package providers

import (
	"os"
	"strconv"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// FromEnv assembles a bundle from the same environment variables the hosted
// product reads: OPENAI_API_KEY, GROQ_API_KEY, OLLAMA_HOST, QDRANT_URL,
// QDRANT_API_KEY and SMTP_HOST/SMTP_PORT/SMTP_USERNAME/SMTP_PASSWORD.
// Capabilities whose credentials are absent are left nil; nodes that need
// them report a provider-not-configured error at execution time.
func FromEnv() (*Bundle, error) {
	b := &Bundle{
		HTTP:   NewNetHTTPCaller(),
		Search: NewDuckDuckGoSearcher(),
	}

	chat := NewChatLLM()
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		client, err := openai.New(openai.WithToken(key))
		if err != nil {
			return nil, NewError("openai", err)
		}
		chat.Register("openai", client)

		embedder, err := NewLangchainEmbedder(client)
		if err != nil {
			return nil, err
		}
		b.Embedder = embedder
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		client, err := openai.New(
			openai.WithToken(key),
			openai.WithBaseURL(groqBaseURL),
		)
		if err != nil {
			return nil, NewError("groq", err)
		}
		chat.Register("groq", client)
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		client, err := ollama.New(
			ollama.WithServerURL(host),
			ollama.WithModel("llama3"),
		)
		if err != nil {
			return nil, NewError("ollama", err)
		}
		chat.Register("ollama", client)
	}
	if len(chat.models) > 0 {
		if _, ok := chat.models["openai"]; ok {
			chat.SetDefault("openai")
		}
		b.LLM = chat
	}

	if qdrantURL := os.Getenv("QDRANT_URL"); qdrantURL != "" {
		searcher, err := NewQdrantSearcher(qdrantURL, os.Getenv("QDRANT_API_KEY"))
		if err != nil {
			return nil, err
		}
		b.Vector = searcher
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		b.Email = NewSMTPSender(SMTPConfig{
			Host:     host,
			Port:     port,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		})
	}

	return b, nil
}
