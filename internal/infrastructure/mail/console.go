// Package mail provides the outbound email capability. No live provider is
// wired: ConsoleMailer renders messages into the log, which is the shipped
// behavior. Swapping in a real provider means implementing ports.Mailer.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleMailer writes every message to the structured log instead of
// delivering it.
type ConsoleMailer struct {
	log zerolog.Logger
}

func NewConsoleMailer(log zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

// Send logs the message and reports success.
func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("outbound email")
	m.log.Debug().Str("body", body).Msg("outbound email body")
	return nil
}
