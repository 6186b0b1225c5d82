package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// IntentClassificationNode asks the completion backend to assign the query to
// one of up to five configured classes. Temperature is pinned to zero so the
// same query classifies the same way across runs.
type IntentClassificationNode struct{}

type intentConfig struct {
	Service string `mapstructure:"service"`
	Model   string `mapstructure:"model"`

	Class1Label       string `mapstructure:"class_1_label"`
	Class1Instruction string `mapstructure:"class_1_instruction"`
	Class2Label       string `mapstructure:"class_2_label"`
	Class2Instruction string `mapstructure:"class_2_instruction"`
	Class3Label       string `mapstructure:"class_3_label"`
	Class3Instruction string `mapstructure:"class_3_instruction"`
	Class4Label       string `mapstructure:"class_4_label"`
	Class4Instruction string `mapstructure:"class_4_instruction"`
	Class5Label       string `mapstructure:"class_5_label"`
	Class5Instruction string `mapstructure:"class_5_instruction"`
}

type intentClass struct {
	Label       string
	Instruction string
}

func (c intentConfig) classes() []intentClass {
	all := []intentClass{
		{c.Class1Label, c.Class1Instruction},
		{c.Class2Label, c.Class2Instruction},
		{c.Class3Label, c.Class3Instruction},
		{c.Class4Label, c.Class4Instruction},
		{c.Class5Label, c.Class5Instruction},
	}
	var out []intentClass
	for _, cl := range all {
		if strings.TrimSpace(cl.Label) != "" {
			out = append(out, cl)
		}
	}
	return out
}

const intentSystemPrompt = "You are an intent classifier. Given a user query and a set of intent classes, reply with a JSON object of the form {\"intent\": \"<label>\", \"confidence\": <0..1>, \"reason\": \"<short explanation>\"}. Reply with the JSON object only."

type intentReply struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

func (n *IntentClassificationNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "intentclassificationnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "intent", Kind: workflow.KindText},
			{Name: "confidence", Kind: workflow.KindNumber},
			{Name: "reason", Kind: workflow.KindText},
		},
	}
}

func (n *IntentClassificationNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.LLM == nil {
		return types.NodeResult{}, providers.NewError("llm", errors.New("no completion backend configured"))
	}

	var cfg intentConfig
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	classes := cfg.classes()
	if len(classes) == 0 {
		return types.NodeResult{}, &EvaluationError{Detail: "no intent classes configured"}
	}

	query := trimmedString(req.Inputs["query"])
	if query == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "no query to classify"}
	}

	var b strings.Builder
	b.WriteString("Classes:\n")
	for _, cl := range classes {
		if cl.Instruction != "" {
			fmt.Fprintf(&b, "- %s: %s\n", cl.Label, cl.Instruction)
		} else {
			fmt.Fprintf(&b, "- %s\n", cl.Label)
		}
	}
	fmt.Fprintf(&b, "\nQuery: %s", query)

	reply, err := req.Providers.LLM.Complete(ctx, providers.CompletionRequest{
		Service:     cfg.Service,
		Model:       cfg.Model,
		System:      intentSystemPrompt,
		Prompt:      b.String(),
		Temperature: 0,
		MaxTokens:   200,
	})
	if err != nil {
		return types.NodeResult{}, err
	}

	parsed, err := parseIntentReply(reply)
	if err != nil {
		return types.NodeResult{}, err
	}

	return result(map[string]any{
		"intent":     parsed.Intent,
		"confidence": parsed.Confidence,
		"reason":     parsed.Reason,
	}), nil
}

// parseIntentReply tolerates models that wrap the JSON in prose or code
// fences: it extracts the first balanced object and decodes that.
func parseIntentReply(reply string) (intentReply, error) {
	var parsed intentReply
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return parsed, &EvaluationError{Detail: "classifier reply contains no JSON object"}
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return parsed, &EvaluationError{Detail: "classifier reply is not valid JSON", Err: err}
	}
	if parsed.Intent == "" {
		return parsed, &EvaluationError{Detail: "classifier reply has no intent field"}
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	} else if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return parsed, nil
}
