package followups

import (
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobFollowup JobType = "followup"
	JobQuote    JobType = "quote"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Job is one delayed delivery: a 24-hour lead follow-up or a delayed quote.
// Jobs survive process restarts when the Postgres store is configured.
type Job struct {
	ID        uuid.UUID `json:"id"`
	Type      JobType   `json:"type"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	City      string    `json:"city"`
	Size      int       `json:"size,omitempty"`
	RunAt     time.Time `json:"runAt"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
}
