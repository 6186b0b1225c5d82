package nodes

import (
	"context"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// KnowledgeBaseRetrievalNode embeds the query and runs a similarity search
// against the configured collection. Zero matches is a valid, empty result.
type KnowledgeBaseRetrievalNode struct{}

type retrievalConfig struct {
	CollectionName string  `mapstructure:"collection_name"`
	Limit          int     `mapstructure:"limit"`
	ScoreThreshold float64 `mapstructure:"score_threshold"`
}

func (n *KnowledgeBaseRetrievalNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "knowledgebaseretrievalnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "response", Kind: workflow.KindText},
			{Name: "metadata", Kind: workflow.KindObject},
		},
	}
}

func (n *KnowledgeBaseRetrievalNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.Embedder == nil || req.Providers.Vector == nil {
		return types.NodeResult{}, providers.NewError("vectorstore", errors.New("retrieval backend not configured"))
	}

	cfg := retrievalConfig{
		CollectionName: "medusa-docs",
		Limit:          5,
		ScoreThreshold: 0.3,
	}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	if cfg.Limit < 1 || cfg.Limit > 50 {
		cfg.Limit = 5
	}
	if cfg.ScoreThreshold < 0 || cfg.ScoreThreshold > 1 {
		cfg.ScoreThreshold = 0.3
	}

	query := trimmedString(req.Inputs["query"])
	if query == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "retrieval query is empty"}
	}

	vector, err := req.Providers.Embedder.Embed(ctx, query)
	if err != nil {
		return types.NodeResult{}, err
	}
	matches, err := req.Providers.Vector.Search(ctx, cfg.CollectionName, vector, cfg.Limit)
	if err != nil {
		return types.NodeResult{}, err
	}

	kept := matches[:0:0]
	for _, m := range matches {
		if float64(m.Score) >= cfg.ScoreThreshold {
			kept = append(kept, m)
		}
	}

	best := ""
	var bestScore float32
	if len(kept) > 0 {
		best = kept[0].Content
		bestScore = kept[0].Score
	}

	return result(map[string]any{
		"response": best,
		"metadata": map[string]any{
			"collection":    cfg.CollectionName,
			"total_results": len(kept),
			"best_score":    bestScore,
			"query":         query,
		},
	}), nil
}
