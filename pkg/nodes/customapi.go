package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/internal/template"
	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// CustomAPINode issues an arbitrary HTTP request. Inputs are exposed to the
// URL and body as {{input1}}..{{input3}} placeholders.
type CustomAPINode struct{}

type customAPIConfig struct {
	URL     string `mapstructure:"url"`
	Method  string `mapstructure:"method"`
	Headers string `mapstructure:"headers"`
	Body    string `mapstructure:"body"`
	Timeout int    `mapstructure:"timeout"`
}

func (n *CustomAPINode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "customapinode",
		Inputs: []workflow.HandleSpec{
			{Name: "input1", Kind: workflow.KindAny},
			{Name: "input2", Kind: workflow.KindAny},
			{Name: "input3", Kind: workflow.KindAny},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText},
		},
	}
}

func (n *CustomAPINode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.HTTP == nil {
		return types.NodeResult{}, providers.NewError("http", errors.New("no http caller configured"))
	}

	cfg := customAPIConfig{Method: "GET", Headers: "{}", Body: "{}", Timeout: 30}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	vars := map[string]any{
		"input1": asString(req.Inputs["input1"]),
		"input2": asString(req.Inputs["input2"]),
		"input3": asString(req.Inputs["input3"]),
	}
	url := template.Render(cfg.URL, vars)
	bodyStr := template.Render(cfg.Body, vars)

	headers := map[string]string{}
	if strings.TrimSpace(cfg.Headers) != "" {
		if err := json.Unmarshal([]byte(cfg.Headers), &headers); err != nil {
			return types.NodeResult{}, &EvaluationError{Detail: "invalid headers JSON", Err: err}
		}
	}

	method := strings.ToUpper(cfg.Method)
	var body []byte
	switch method {
	case "GET":
	case "POST", "PUT", "DELETE":
		if trimmed := strings.TrimSpace(bodyStr); trimmed != "" && trimmed != "{}" {
			if !json.Valid([]byte(trimmed)) {
				return types.NodeResult{}, &EvaluationError{Detail: "invalid body JSON"}
			}
			body = []byte(trimmed)
			if headers["Content-Type"] == "" {
				headers["Content-Type"] = "application/json"
			}
		}
	default:
		return types.NodeResult{}, &EvaluationError{Detail: fmt.Sprintf("unsupported HTTP method %q", method)}
	}

	resp, err := req.Providers.HTTP.Do(ctx, providers.HTTPRequest{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	})
	effect := types.SideEffect{
		Kind: "http_call",
		Detail: map[string]any{
			"method": method,
			"url":    url,
		},
	}
	if err != nil {
		return types.NodeResult{SideEffects: []types.SideEffect{effect}}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.NodeResult{SideEffects: []types.SideEffect{effect}},
			providers.NewError("http", errors.Errorf("request returned status %d", resp.StatusCode))
	}

	return result(map[string]any{"query": renderBody(resp.Body)}, effect), nil
}

// renderBody pretty-prints JSON replies and passes anything else through.
func renderBody(raw []byte) string {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(pretty)
}
