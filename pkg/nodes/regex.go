package nodes

import (
	"context"
	"regexp"
	"strings"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// RegexExtractorNode applies a configured pattern to its input. No match is
// a valid outcome: the output is the empty-string sentinel, never an error.
type RegexExtractorNode struct{}

type regexConfig struct {
	Pattern       string `mapstructure:"pattern"`
	CaseSensitive *bool  `mapstructure:"case_sensitive"`
}

func (n *RegexExtractorNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "regexextractornode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText},
		},
	}
}

func (n *RegexExtractorNode) Execute(_ context.Context, req Request) (types.NodeResult, error) {
	cfg := regexConfig{Pattern: `\d+`}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	pattern := cfg.Pattern
	if cfg.CaseSensitive != nil && !*cfg.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return types.NodeResult{}, &EvaluationError{Detail: "invalid regex pattern", Err: err}
	}

	query := asString(req.Inputs["query"])
	groups := re.FindAllStringSubmatch(query, -1)

	var extracted []string
	for _, match := range groups {
		if len(match) > 1 {
			// Capture groups present: keep the groups, not the full match.
			extracted = append(extracted, match[1:]...)
		} else {
			extracted = append(extracted, match[0])
		}
	}

	return result(map[string]any{"query": strings.Join(extracted, ", ")}), nil
}
