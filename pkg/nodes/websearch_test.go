package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoflow/convoflow/pkg/providers"
)

func TestWebSearchReturnsDigest(t *testing.T) {
	node := &WebSearchNode{}
	res, err := node.Execute(context.Background(), Request{
		Inputs:    map[string]any{"query": "golang workflow engines"},
		Providers: &providers.Bundle{Search: &providers.StubSearch{Result: "1. Some result"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1. Some result", res.Outputs["response"])
}

func TestWebSearchEmptyQuery(t *testing.T) {
	node := &WebSearchNode{}
	_, err := node.Execute(context.Background(), Request{
		Inputs:    map[string]any{"query": "  "},
		Providers: &providers.Bundle{Search: &providers.StubSearch{Result: "x"}},
	})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
}

func TestWebSearchWithoutProvider(t *testing.T) {
	node := &WebSearchNode{}
	_, err := node.Execute(context.Background(), Request{
		Inputs:    map[string]any{"query": "q"},
		Providers: &providers.Bundle{},
	})
	var provErr *providers.Error
	require.ErrorAs(t, err, &provErr)
}
