package providers

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
)

// LangchainEmbedder adapts a langchaingo embedder client (the OpenAI LLM
// client implements it) to the Embedder contract.
type LangchainEmbedder struct {
	embedder *embeddings.EmbedderImpl
}

// NewLangchainEmbedder wraps the given client.
func NewLangchainEmbedder(client embeddings.EmbedderClient) (*LangchainEmbedder, error) {
	e, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, NewError("embeddings", err)
	}
	return &LangchainEmbedder{embedder: e}, nil
}

// Embed returns the embedding vector for a single query text.
func (l *LangchainEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := l.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, NewError("embeddings", err)
	}
	return vec, nil
}
