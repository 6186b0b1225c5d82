package providers

import (
	"context"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

const searchUserAgent = "convoflow/1.0 (workflow engine)"

// DuckDuckGoSearcher runs web searches through DuckDuckGo's HTML endpoint
// via the langchaingo tool.
type DuckDuckGoSearcher struct {
	userAgent string
}

// NewDuckDuckGoSearcher returns a searcher with the default user agent.
func NewDuckDuckGoSearcher() *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{userAgent: searchUserAgent}
}

// Search returns a plain-text digest of the top results.
func (d *DuckDuckGoSearcher) Search(ctx context.Context, query string, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	tool, err := duckduckgo.New(maxResults, d.userAgent)
	if err != nil {
		return "", NewError("duckduckgo", err)
	}
	out, err := tool.Call(ctx, query)
	if err != nil {
		return "", NewError("duckduckgo", err)
	}
	return out, nil
}
