// Package notifier sends outbound mail through a configurable provider.
package notifier

import (
	"context"
	"fmt"

	"serpmate/internal/config"
	"serpmate/internal/notifier/providers"
)

// Sender defines the interface for email sending
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewFromConfig creates a sender based on configuration. profileDir is the
// persisted browser profile used by the webmail provider to stay logged in
// between runs.
func NewFromConfig(cfg config.MailConfig, profileDir string) (Sender, error) {
	switch cfg.Provider {
	case "webmail":
		return providers.NewWebmailSender(cfg.WebmailURL, profileDir), nil
	case "smtp":
		return providers.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.FromAddr,
		), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
