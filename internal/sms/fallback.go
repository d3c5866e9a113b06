package sms

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/email"
)

// EmailFallbackSender relays SMS text to the staff inbox when no Twilio
// account is configured, so message content is never silently dropped.
type EmailFallbackSender struct {
	sender email.Sender
	notify string
}

func NewEmailFallbackSender(sender email.Sender, notifyEmail string) *EmailFallbackSender {
	return &EmailFallbackSender{sender: sender, notify: notifyEmail}
}

func (f *EmailFallbackSender) Send(ctx context.Context, to, body string) error {
	msg := email.Message{
		To:       f.notify,
		Subject:  fmt.Sprintf("SMS for %s (no SMS provider configured)", to),
		TextBody: fmt.Sprintf("Intended recipient: %s\n\n%s", to, body),
	}
	if err := f.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sms email fallback: %w", err)
	}

	log.Info().Str("to", to).Msg("sms relayed to staff inbox")
	return nil
}
