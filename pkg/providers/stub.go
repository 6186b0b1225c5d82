package providers

import (
	"context"

	"github.com/pkg/errors"
)

// Stub implementations for tests and offline examples. Each delegates to an
// optional function field and falls back to a deterministic canned reply, so
// engine behavior stays reproducible without network access.

// StubLLM replies with Fn when set, otherwise echoes the rendered prompt.
type StubLLM struct {
	Fn func(ctx context.Context, req CompletionRequest) (string, error)
}

func (s *StubLLM) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if s.Fn != nil {
		return s.Fn(ctx, req)
	}
	return req.Prompt, nil
}

// StubEmbedder hashes each rune into a fixed-width vector.
type StubEmbedder struct {
	Fn func(ctx context.Context, text string) ([]float32, error)
}

func (s *StubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.Fn != nil {
		return s.Fn(ctx, text)
	}
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r) / 1000
	}
	return vec, nil
}

// StubVector returns the configured matches for every query.
type StubVector struct {
	Matches []Match
	Fn      func(ctx context.Context, collection string, vector []float32, k int) ([]Match, error)
}

func (s *StubVector) Search(ctx context.Context, collection string, vector []float32, k int) ([]Match, error) {
	if s.Fn != nil {
		return s.Fn(ctx, collection, vector, k)
	}
	if k < len(s.Matches) {
		return s.Matches[:k], nil
	}
	return s.Matches, nil
}

// StubHTTP records the last request and returns the configured response.
type StubHTTP struct {
	Response HTTPResponse
	Err      error
	LastReq  HTTPRequest
}

func (s *StubHTTP) Do(ctx context.Context, req HTTPRequest) (HTTPResponse, error) {
	s.LastReq = req
	if s.Err != nil {
		return HTTPResponse{}, s.Err
	}
	return s.Response, nil
}

// StubEmail records sent messages instead of delivering them.
type StubEmail struct {
	Sent []EmailMessage
	Err  error
}

func (s *StubEmail) Send(ctx context.Context, msg EmailMessage) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// StubSearch returns a canned digest.
type StubSearch struct {
	Result string
	Err    error
}

func (s *StubSearch) Search(ctx context.Context, query string, maxResults int) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Result == "" {
		return "", errors.New("no results configured")
	}
	return s.Result, nil
}

// NewStubBundle wires every capability to a stub, with the LLM reply driven
// by fn (nil keeps the echo default).
func NewStubBundle(fn func(ctx context.Context, req CompletionRequest) (string, error)) *Bundle {
	return &Bundle{
		LLM:      &StubLLM{Fn: fn},
		Embedder: &StubEmbedder{},
		Vector:   &StubVector{},
		HTTP:     &StubHTTP{},
		Email:    &StubEmail{},
		Search:   &StubSearch{Result: "no results"},
	}
}
