package email

import (
	"context"

	"crm_backend/platform/config"
)

type Sender interface {
	SendLeadCreatedEmail(ctx context.Context, toEmail string, data LeadCreatedData) error
}

// NoopSender is used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendLeadCreatedEmail(ctx context.Context, toEmail string, data LeadCreatedData) error {
	return nil
}

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)

// NewSender returns an SMTP sender when SMTP_HOST is set and a NoopSender otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
