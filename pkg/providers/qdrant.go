package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// QdrantSearcher queries Qdrant's points/search endpoint directly. The
// retriever contract takes an already-embedded vector, which the langchaingo
// store does not expose (it only accepts query text), so the adapter speaks
// the same REST protocol the store uses internally.
type QdrantSearcher struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
}

// NewQdrantSearcher builds a searcher for the given Qdrant endpoint.
func NewQdrantSearcher(rawURL, apiKey string) (*QdrantSearcher, error) {
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, NewError("qdrant", errors.Wrap(err, "parsing url"))
	}
	return &QdrantSearcher{
		baseURL: u,
		apiKey:  apiKey,
		client:  http.DefaultClient,
	}, nil
}

type qdrantSearchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type qdrantSearchResponse struct {
	Result []struct {
		Score   float32        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
	Status any `json:"status"`
}

// Search returns the top-k matches for the vector, ordered by descending
// similarity. An empty result set is a valid outcome, not an error.
func (q *QdrantSearcher) Search(ctx context.Context, collection string, vector []float32, k int) ([]Match, error) {
	body, err := json.Marshal(qdrantSearchRequest{
		Vector:      vector,
		Limit:       k,
		WithPayload: true,
	})
	if err != nil {
		return nil, NewError("qdrant", err)
	}

	endpoint := fmt.Sprintf("%s/collections/%s/points/search", q.baseURL, url.PathEscape(collection))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewError("qdrant", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, NewError("qdrant", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, NewError("qdrant", errors.Errorf("search returned status %d", resp.StatusCode))
	}

	var decoded qdrantSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewError("qdrant", errors.Wrap(err, "decoding search response"))
	}

	matches := make([]Match, 0, len(decoded.Result))
	for _, r := range decoded.Result {
		matches = append(matches, Match{
			Content:  payloadContent(r.Payload),
			Score:    r.Score,
			Metadata: r.Payload,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches, nil
}

// payloadContent extracts the document text from a Qdrant payload, trying
// the keys used by the ingestion pipeline in order.
func payloadContent(payload map[string]any) string {
	for _, key := range []string{"content", "text", "page_content", "title"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
