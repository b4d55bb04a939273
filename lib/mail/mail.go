// Package mail sends the site's notification and contact emails.
package mail

import (
	"context"
	"fmt"

	"github.com/callsoso/callsoso/config"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer for the configured backend.
func New(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Backend {
	case config.EmailSMTP:
		return NewSMTPMailer(cfg), nil
	case config.EmailConsole, "":
		return NewConsoleMailer(nil), nil
	default:
		return nil, fmt.Errorf("unknown email backend %q", cfg.Backend)
	}
}
