package nodes

import (
	"context"

	"github.com/pkg/errors"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// EmailNode sends its input as a notification email. Delivery is
// best-effort: a failure fails the node, nothing is retried.
type EmailNode struct{}

type emailConfig struct {
	FromEmail   string `mapstructure:"from_email"`
	FromName    string `mapstructure:"from_name"`
	ToEmail     string `mapstructure:"to_email"`
	Subject     string `mapstructure:"subject"`
	ContentType string `mapstructure:"content_type"`
}

func (n *EmailNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "emailnode",
		Inputs: []workflow.HandleSpec{
			{Name: "query", Kind: workflow.KindText, Required: true},
		},
		Outputs: []workflow.HandleSpec{
			{Name: "status", Kind: workflow.KindText},
			{Name: "success", Kind: workflow.KindBoolean},
		},
	}
}

func (n *EmailNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	if req.Providers == nil || req.Providers.Email == nil {
		return types.NodeResult{}, providers.NewError("email", errors.New("no email sender configured"))
	}

	cfg := emailConfig{
		FromName:    "Convo Flow",
		Subject:     "Notification from Convo Flow",
		ContentType: "html",
	}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}

	body := asString(req.Inputs["query"])
	if body == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "no email body provided"}
	}
	if cfg.ToEmail == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "recipient email is required"}
	}

	msg := providers.EmailMessage{
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
		To:       cfg.ToEmail,
		Subject:  cfg.Subject,
		Body:     body,
		HTML:     cfg.ContentType != "plain",
	}
	effect := types.SideEffect{
		Kind: "email",
		Detail: map[string]any{
			"to":      cfg.ToEmail,
			"subject": cfg.Subject,
		},
	}
	if err := req.Providers.Email.Send(ctx, msg); err != nil {
		return types.NodeResult{SideEffects: []types.SideEffect{effect}}, err
	}

	return result(map[string]any{
		"status":  "Email sent to " + cfg.ToEmail,
		"success": true,
	}, effect), nil
}
