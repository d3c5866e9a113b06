package email

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between any two sends. It is
// injected into the send path rather than living as package state so a
// single coordinating process owns it.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous call, then records the current time as the new reference point.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.last.IsZero() {
		elapsed := rl.now().Sub(rl.last)
		if elapsed < rl.interval {
			if err := rl.sleep(ctx, rl.interval-elapsed); err != nil {
				return err
			}
		}
	}

	rl.last = rl.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RateLimitedSender applies the limiter before every send.
type RateLimitedSender struct {
	sender  Sender
	limiter *RateLimiter
}

func NewRateLimitedSender(sender Sender, limiter *RateLimiter) *RateLimitedSender {
	return &RateLimitedSender{sender: sender, limiter: limiter}
}

func (s *RateLimitedSender) Send(ctx context.Context, msg Message) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.sender.Send(ctx, msg)
}
