package followups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/campaigns"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
)

var ErrMissingEmail = errors.New("email is required")

// maxAttempts caps delivery retries per job before it is marked failed.
const maxAttempts = 3

type Service struct {
	store  JobStore
	sender email.Sender
	now    func() time.Time
}

func NewService(store JobStore, sender email.Sender) *Service {
	return &Service{
		store:  store,
		sender: sender,
		now:    time.Now,
	}
}

// ScheduleFollowup enqueues the standard post-lead follow-up, due after the
// given delay (24 hours in production).
func (s *Service) ScheduleFollowup(ctx context.Context, to, firstName, city string, delay time.Duration) (*Job, error) {
	if strings.TrimSpace(to) == "" {
		return nil, ErrMissingEmail
	}

	now := s.now()
	job := Job{
		ID:        uuid.New(),
		Type:      JobFollowup,
		Email:     to,
		FirstName: firstName,
		City:      city,
		RunAt:     now.Add(delay),
		CreatedAt: now,
		Status:    StatusPending,
	}

	if err := s.store.Enqueue(ctx, job); err != nil {
		return nil, err
	}

	log.Info().Str("job_id", job.ID.String()).Time("run_at", job.RunAt).Msg("follow-up scheduled")
	return &job, nil
}

// ScheduleQuote enqueues a delayed quote email. The delay is caller-chosen
// so the quote lands a little after the auto-reply instead of racing it.
func (s *Service) ScheduleQuote(ctx context.Context, to, firstName, city string, size int, delay time.Duration) (*Job, error) {
	if strings.TrimSpace(to) == "" {
		return nil, ErrMissingEmail
	}

	now := s.now()
	job := Job{
		ID:        uuid.New(),
		Type:      JobQuote,
		Email:     to,
		FirstName: firstName,
		City:      city,
		Size:      size,
		RunAt:     now.Add(delay),
		CreatedAt: now,
		Status:    StatusPending,
	}

	if err := s.store.Enqueue(ctx, job); err != nil {
		return nil, err
	}

	log.Info().Str("job_id", job.ID.String()).Int("size", size).Time("run_at", job.RunAt).Msg("quote scheduled")
	return &job, nil
}

// ClaimDue exposes the store's claim operation to the scheduler loop.
func (s *Service) ClaimDue(ctx context.Context, limit int) ([]Job, error) {
	return s.store.ClaimDue(ctx, s.now(), limit)
}

// Release puts a claimed job back in the pending pool. The scheduler
// calls it when a claimed job could not be handed to the queue, so the
// job is not stranded in the claimed state.
func (s *Service) Release(ctx context.Context, id uuid.UUID) error {
	return s.store.Release(ctx, id)
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.store.CountPending(ctx)
}

// Get loads a single job; the queue worker uses it to decide whether a
// failed delivery is worth requeueing.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.store.Get(ctx, id)
}

// BuildMessage renders a job into the email it will deliver. Follow-ups use
// the campaign catalog's follow_up template; quotes get a computed price.
func BuildMessage(job Job, now time.Time) email.Message {
	switch job.Type {
	case JobQuote:
		size, price := QuotePrice(job.Size)
		city := job.City
		if city == "" {
			city = "your area"
		}
		return email.Message{
			To:      job.Email,
			Subject: fmt.Sprintf("Your %d yard dumpster quote", size),
			HTMLBody: fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi %s,</p>
<p>Thanks for reaching out. Here's your quote for %s:</p>
<p style="font-size: 1.3em;"><strong>%d yard roll-off: $%d</strong></p>
<p>That's a flat rate for a 7-day rental with weight included. Reply to this
email or call us to lock in a delivery date.</p>
<p>- The Wasatch Bins Team</p>
</body></html>`, displayName(job.FirstName), city, size, price),
		}
	default:
		tpl, _ := campaigns.LookupTemplate("follow_up")
		client := clients.Client{FirstName: job.FirstName, Email: job.Email, County: job.City}
		return email.Message{
			To:       job.Email,
			Subject:  campaigns.Personalize(tpl.Subject, client, campaigns.CustomData{}, now),
			HTMLBody: campaigns.Personalize(tpl.HTMLBody, client, campaigns.CustomData{}, now),
		}
	}
}

func displayName(firstName string) string {
	if strings.TrimSpace(firstName) == "" {
		return "there"
	}
	return firstName
}

// Deliver sends a claimed job and records the outcome. Returns the send
// error so callers (queue worker, inline flush) can decide about retries.
func (s *Service) Deliver(ctx context.Context, job Job) error {
	err := s.sender.Send(ctx, BuildMessage(job, s.now()))
	if err == nil {
		if merr := s.store.MarkSent(ctx, job.ID); merr != nil {
			// Delivery happened; a bookkeeping failure must not trigger a resend
			log.Error().Err(merr).Str("job_id", job.ID.String()).Msg("failed to mark job sent")
		}
		return nil
	}

	attempts, rerr := s.store.RecordFailure(ctx, job.ID, err.Error())
	if rerr != nil {
		log.Error().Err(rerr).Str("job_id", job.ID.String()).Msg("failed to record job failure")
		return err
	}

	if attempts >= maxAttempts {
		log.Warn().Str("job_id", job.ID.String()).Int("attempts", attempts).Msg("max attempts reached, giving up")
		if merr := s.store.MarkFailed(ctx, job.ID, err.Error()); merr != nil {
			log.Error().Err(merr).Str("job_id", job.ID.String()).Msg("failed to mark job failed")
		}
	}
	return err
}

// DeliverByID loads a job and delivers it; used by the queue worker.
func (s *Service) DeliverByID(ctx context.Context, id uuid.UUID) error {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status == StatusSent || job.Status == StatusFailed {
		// Queue redelivery of an already-settled job; nothing to do
		return nil
	}
	return s.Deliver(ctx, job)
}

// FlushDue claims every due job and delivers inline. This backs the polled
// GET endpoint for deployments without a queue worker.
func (s *Service) FlushDue(ctx context.Context) (processed, failed int, err error) {
	jobs, err := s.ClaimDue(ctx, 100)
	if err != nil {
		return 0, 0, err
	}

	for _, job := range jobs {
		if derr := s.Deliver(ctx, job); derr != nil {
			failed++
			continue
		}
		processed++
	}
	return processed, failed, nil
}
