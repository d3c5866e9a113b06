package sms

import "context"

// Sender delivers a short text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
