package providers

import (
	"context"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outbound mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers emails over SMTP using go-mail.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender builds a sender for the given server.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers a single message. Delivery is best-effort: the caller treats
// a failure as a node error, never retries automatically.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	m := mail.NewMsg()
	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.From); err != nil {
			return NewError("smtp", err)
		}
	} else {
		if err := m.From(msg.From); err != nil {
			return NewError("smtp", err)
		}
	}
	if err := m.To(msg.To); err != nil {
		return NewError("smtp", err)
	}
	m.Subject(msg.Subject)
	if msg.HTML {
		m.SetBodyString(mail.TypeTextHTML, msg.Body)
	} else {
		m.SetBodyString(mail.TypeTextPlain, msg.Body)
	}

	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return NewError("smtp", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return NewError("smtp", err)
	}
	return nil
}
