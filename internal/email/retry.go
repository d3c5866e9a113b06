package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Backoff schedule applied only to provider rate-limit responses. All
// other transport errors fail immediately.
var defaultBackoff = []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second}

// RetryingSender retries rate-limited sends up to len(backoff) times.
type RetryingSender struct {
	sender  Sender
	backoff []time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewRetryingSender(sender Sender) *RetryingSender {
	return &RetryingSender{
		sender:  sender,
		backoff: defaultBackoff,
		sleep:   sleepCtx,
	}
}

func (s *RetryingSender) Send(ctx context.Context, msg Message) error {
	err := s.sender.Send(ctx, msg)
	if err == nil {
		return nil
	}

	for attempt := 0; attempt < len(s.backoff); attempt++ {
		if !IsRateLimitError(err) {
			return err
		}

		log.Warn().Err(err).Str("to", msg.To).Int("attempt", attempt+1).
			Dur("backoff", s.backoff[attempt]).Msg("provider rate limit, backing off")

		if serr := s.sleep(ctx, s.backoff[attempt]); serr != nil {
			return serr
		}

		err = s.sender.Send(ctx, msg)
		if err == nil {
			return nil
		}
	}

	return err
}

// IsRateLimitError reports whether a transport error looks like a provider
// rate-limit response. SMTP servers signal throttling with 421/450 codes or
// a textual hint; there is no structured error to inspect.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"rate limit", "too many", "421", "450"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
