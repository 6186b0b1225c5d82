package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// SummaryNode condenses long content with a chunked map-reduce: split, summarize
// each chunk, then summarize the concatenated chunk summaries until one level
// remains. Short inputs go through a single completion.
type SummaryNode struct{}

type summaryConfig struct {
	ChunkSize          string `mapstructure:"chunk_size"`
	SummarizationLevel string `mapstructure:"summarization_level"`
	MaxChunksPerLevel  int    `mapstructure:"max_chunks_per_level"`
	Service            string `mapstructure:"service"`
	Model              string `mapstructure:"model"`
}

const summarySystemPrompt = "You are an expert summarizer. Produce a clear, faithful summary of the provided text. Do not add information that is not in the text."

// chunkSizes maps the editor's named chunk sizes to character counts.
var chunkSizes = map[string]int{
	"small":  1000,
	"medium": 2500,
	"large":  5000,
}

// levelSentences maps summarization_level to a target summary length.
var levelSentences = map[string]string{
	"small":  "2-3 sentences",
	"medium": "one paragraph",
	"large":  "two to three paragraphs",
}

func (n *SummaryNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "summarynode",
		Inputs: []workflow.HandleSpec{
			{Name: "content", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "summary", Kind: workflow.KindText},
			{Name: "metadata", Kind: workflow.KindObject},
		},
	}
}

func (n *SummaryNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.LLM == nil {
		return types.NodeResult{}, providers.NewError("llm", errors.New("no completion backend configured"))
	}

	cfg := summaryConfig{
		ChunkSize:          "medium",
		SummarizationLevel: "medium",
		MaxChunksPerLevel:  10,
	}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	chunkSize, ok := chunkSizes[cfg.ChunkSize]
	if !ok {
		chunkSize = chunkSizes["medium"]
	}
	target, ok := levelSentences[cfg.SummarizationLevel]
	if !ok {
		target = levelSentences["medium"]
	}
	if cfg.MaxChunksPerLevel < 1 {
		cfg.MaxChunksPerLevel = 10
	}

	content := trimmedString(req.Inputs["content"])
	if content == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "no content to summarize"}
	}

	levels := 0
	chunksSeen := 0
	text := content
	for len(text) > chunkSize {
		splitter := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkSize/10),
		)
		chunks, err := splitter.SplitText(text)
		if err != nil {
			return types.NodeResult{}, errors.Wrap(err, "splitting content")
		}
		if len(chunks) > cfg.MaxChunksPerLevel {
			chunks = chunks[:cfg.MaxChunksPerLevel]
		}
		if len(chunks) <= 1 {
			break
		}
		chunksSeen += len(chunks)
		levels++

		summaries := make([]string, 0, len(chunks))
		for i, chunk := range chunks {
			s, err := n.summarize(ctx, req, cfg, fmt.Sprintf("Summarize this section in %s:\n\n%s", target, chunk))
			if err != nil {
				return types.NodeResult{}, errors.Wrapf(err, "summarizing chunk %d", i+1)
			}
			summaries = append(summaries, s)
		}
		text = strings.Join(summaries, "\n\n")
	}

	summary, err := n.summarize(ctx, req, cfg, fmt.Sprintf("Summarize the following in %s:\n\n%s", target, text))
	if err != nil {
		return types.NodeResult{}, err
	}

	return result(map[string]any{
		"summary": summary,
		"metadata": map[string]any{
			"original_length":     len(content),
			"summary_length":      len(summary),
			"levels":              levels,
			"chunks_summarized":   chunksSeen,
			"summarization_level": cfg.SummarizationLevel,
		},
	}), nil
}

func (n *SummaryNode) summarize(ctx context.Context, req Request, cfg summaryConfig, prompt string) (string, error) {
	reply, err := req.Providers.LLM.Complete(ctx, providers.CompletionRequest{
		Service:     cfg.Service,
		Model:       cfg.Model,
		System:      summarySystemPrompt,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
