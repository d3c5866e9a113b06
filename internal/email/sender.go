package email

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Simulates sending messages. Used when SMTP_HOST is set to "mock".
type MockSender struct {
	successRate float64
}

// Create a new mock sender with the given success rate
func NewMockSender(successRate float64) *MockSender {
	return &MockSender{
		successRate: successRate,
	}
}

// Simulates sending a message
func (s *MockSender) Send(ctx context.Context, msg Message) error {
	time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
	if rand.Float64() > s.successRate {
		return fmt.Errorf("mock provider error: failed to deliver message to %s", msg.To)
	}
	log.Debug().Str("to", msg.To).Str("provider_message_id", "mock-msg-"+uuid.New().String()).Msg("mock delivery")
	return nil
}
