// Package providers defines the uniform contracts through which node
// executors reach external services, plus concrete adapters. The engine
// depends only on these interfaces, never on a specific provider's wire
// format; a nil field in the Bundle simply means that capability is not
// configured for the run.
package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/convoflow/convoflow/pkg/types"
)

// CompletionRequest is a single chat-completion call. Service selects among
// the configured backends ("openai", "groq", "ollama"); an empty value uses
// the adapter's default.
type CompletionRequest struct {
	Service     string
	Model       string
	System      string
	Prompt      string
	History     []types.Message
	Temperature float64
	MaxTokens   int
}

// LLM produces text completions.
type LLM interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is one vector-search hit, ordered by descending similarity.
type Match struct {
	Content  string         `json:"content"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// VectorSearcher runs a similarity query against a named collection.
type VectorSearcher interface {
	Search(ctx context.Context, collection string, vector []float32, k int) ([]Match, error)
}

// HTTPRequest is a generic outbound call issued by the custom API node.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// HTTPResponse carries the status and raw body back to the node.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// HTTPCaller issues outbound HTTP requests.
type HTTPCaller interface {
	Do(ctx context.Context, req HTTPRequest) (HTTPResponse, error)
}

// EmailMessage is a single outbound notification. Delivery is best-effort.
type EmailMessage struct {
	From     string
	FromName string
	To       string
	Subject  string
	Body     string
	HTML     bool
}

// EmailSender delivers notification emails.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// WebSearcher runs a web search and returns a plain-text digest of the
// results, ready to be fed into a prompt.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) (string, error)
}

// Bundle groups every provider a run may touch. It is read-only after
// initialization and safe to share across concurrent runs.
type Bundle struct {
	LLM      LLM
	Embedder Embedder
	Vector   VectorSearcher
	HTTP     HTTPCaller
	Email    EmailSender
	Search   WebSearcher
}

// Error wraps a failure from an external provider, keeping the raw message
// for the trace. Timeout expiry is reported the same way.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a provider error.
func NewError(provider string, err error) *Error {
	return &Error{Provider: provider, Err: err}
}
