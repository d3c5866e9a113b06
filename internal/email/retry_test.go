package email

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordingSender records every message and fails a configurable number of
// times before succeeding.
type recordingSender struct {
	err       error
	failCount int
	calls     int
	sent      []Message
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.calls++
	s.sent = append(s.sent, msg)
	if s.err != nil && (s.failCount == 0 || s.calls <= s.failCount) {
		return s.err
	}
	return nil
}

// TestRetryingSender_NoRetryOnSuccess tests the happy path: one send, no sleeps
func TestRetryingSender_NoRetryOnSuccess(t *testing.T) {
	inner := &recordingSender{}
	s := NewRetryingSender(inner)

	var slept []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	if err := s.Send(context.Background(), Message{To: "a@example.com"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner sender called %d times, want 1", inner.calls)
	}
	if len(slept) != 0 {
		t.Errorf("unexpected backoff sleeps: %v", slept)
	}
}

// TestRetryingSender_RetriesRateLimitWithBackoff tests that a rate-limited
// send is retried with the 5s/10s/20s schedule and eventually succeeds
func TestRetryingSender_RetriesRateLimitWithBackoff(t *testing.T) {
	inner := &recordingSender{
		err:       errors.New("421 too many messages, rate limit exceeded"),
		failCount: 2,
	}
	s := NewRetryingSender(inner)

	var slept []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	if err := s.Send(context.Background(), Message{To: "a@example.com"}); err != nil {
		t.Fatalf("Send() error = %v, want success after retries", err)
	}

	if inner.calls != 3 {
		t.Errorf("inner sender called %d times, want 3", inner.calls)
	}
	if len(slept) != 2 || slept[0] != 5*time.Second || slept[1] != 10*time.Second {
		t.Errorf("backoff sleeps = %v, want [5s 10s]", slept)
	}
}

// TestRetryingSender_GivesUpAfterThreeRetries tests that a persistent rate
// limit surfaces after the retry cap
func TestRetryingSender_GivesUpAfterThreeRetries(t *testing.T) {
	inner := &recordingSender{err: errors.New("450 rate limit")}
	s := NewRetryingSender(inner)
	s.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	err := s.Send(context.Background(), Message{To: "a@example.com"})
	if err == nil {
		t.Fatal("Send() = nil, want error after exhausting retries")
	}

	// Initial attempt plus three retries
	if inner.calls != 4 {
		t.Errorf("inner sender called %d times, want 4", inner.calls)
	}
}

// TestRetryingSender_NonRateLimitErrorFailsImmediately tests that ordinary
// transport errors are not retried
func TestRetryingSender_NonRateLimitErrorFailsImmediately(t *testing.T) {
	wantErr := errors.New("550 mailbox unavailable")
	inner := &recordingSender{err: wantErr}
	s := NewRetryingSender(inner)

	var slept []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	err := s.Send(context.Background(), Message{To: "a@example.com"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Send() error = %v, want %v", err, wantErr)
	}
	if inner.calls != 1 {
		t.Errorf("inner sender called %d times, want 1", inner.calls)
	}
	if len(slept) != 0 {
		t.Errorf("unexpected backoff sleeps: %v", slept)
	}
}

// TestIsRateLimitError covers the markers we treat as retryable
func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"explicit rate limit", errors.New("Rate Limit exceeded"), true},
		{"too many connections", errors.New("too many concurrent connections"), true},
		{"smtp 421", errors.New("421 service not available"), true},
		{"smtp 450", errors.New("450 requested action not taken"), true},
		{"hard bounce", errors.New("550 no such user"), false},
		{"network error", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
