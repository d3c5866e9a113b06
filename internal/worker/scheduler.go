package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
)

// claimBatchSize caps how many due jobs one tick picks up.
const claimBatchSize = 100

// Publisher hands a claimed job off to the queue for a worker process.
type Publisher interface {
	PublishFollowupSend(jobID uuid.UUID) error
}

// Scheduler polls the job store for due follow-ups. With a queue
// configured it publishes job IDs for the worker; without one it
// delivers inline, which is fine for single-instance deployments.
type Scheduler struct {
	svc      *followups.Service
	queue    Publisher
	interval time.Duration
	stopChan chan struct{}
}

func NewScheduler(svc *followups.Service, queue Publisher, interval time.Duration) *Scheduler {
	return &Scheduler{
		svc:      svc,
		queue:    queue,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called.
func (s *Scheduler) Start() {
	log.Info().Msgf("starting scheduler with interval %v", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.processDueJobs()
		case <-s.stopChan:
			log.Info().Msg("stopping scheduler")
			return
		}
	}
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) processDueJobs() {
	ctx := context.Background()

	// ClaimDue atomically flips the jobs out of pending, so a second
	// scheduler instance polling the same store won't double-send
	jobs, err := s.svc.ClaimDue(ctx, claimBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim due jobs")
		return
	}

	if len(jobs) == 0 {
		return
	}

	log.Info().Int("count", len(jobs)).Msg("found due follow-up jobs")

	if s.queue == nil {
		s.deliverInline(ctx, jobs)
		return
	}

	queued := 0
	for _, job := range jobs {
		if err := s.queue.PublishFollowupSend(job.ID); err != nil {
			log.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish job")
			// Hand the claim back so the next tick can retry the publish
			if rerr := s.svc.Release(ctx, job.ID); rerr != nil {
				log.Error().Err(rerr).Str("job_id", job.ID.String()).Msg("failed to release unpublished job")
			}
			continue
		}
		queued++
	}

	log.Info().Int("queued", queued).Msg("scheduler tick complete")
}

func (s *Scheduler) deliverInline(ctx context.Context, jobs []followups.Job) {
	sent := 0
	for _, job := range jobs {
		if err := s.svc.Deliver(ctx, job); err != nil {
			log.Error().Err(err).Str("job_id", job.ID.String()).Msg("inline delivery failed")
			continue
		}
		sent++
	}
	log.Info().Int("sent", sent).Msg("inline delivery complete")
}
