package followups

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

// JobStore persists delayed jobs. ClaimDue atomically moves due pending
// jobs out of reach of other pollers before returning them, so delivery is
// at-least-once rather than N-times across schedulers.
type JobStore interface {
	Enqueue(ctx context.Context, job Job) error
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
	// Release returns a claimed job to pending, making it claimable again
	Release(ctx context.Context, id uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	// RecordFailure increments the attempt counter and returns the new
	// count. The job goes back to pending so the next poll retries it;
	// a terminal failure is a separate MarkFailed call.
	RecordFailure(ctx context.Context, id uuid.UUID, lastError string) (int, error)
	// MarkFailed is terminal: the job will never be retried again
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error
	CountPending(ctx context.Context) (int, error)
}

// MemoryStore keeps jobs in process memory. Single-instance deployments
// only: jobs are lost on restart, which the durable Postgres store exists
// to fix.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID]Job)}
}

func (s *MemoryStore) Enqueue(ctx context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return job, nil
}

func (s *MemoryStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Job
	for _, job := range s.jobs {
		if job.Status == StatusPending && !job.RunAt.After(now) {
			due = append(due, job)
		}
	}

	sort.Slice(due, func(i, j int) bool { return due[i].RunAt.Before(due[j].RunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	// Claim: flip status so a concurrent poll can't pick these up again
	for i := range due {
		claimed := due[i]
		claimed.Status = "claimed"
		s.jobs[claimed.ID] = claimed
	}

	return due, nil
}

func (s *MemoryStore) Release(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(id, func(job *Job) {
		job.Status = StatusPending
	})
}

func (s *MemoryStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(id, func(job *Job) {
		job.Status = StatusSent
	})
}

func (s *MemoryStore) RecordFailure(ctx context.Context, id uuid.UUID, lastError string) (int, error) {
	attempts := 0
	err := s.setStatus(id, func(job *Job) {
		job.Attempts++
		job.LastError = lastError
		job.Status = StatusPending
		attempts = job.Attempts
	})
	return attempts, err
}

func (s *MemoryStore) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	return s.setStatus(id, func(job *Job) {
		job.Status = StatusFailed
		job.LastError = lastError
	})
}

func (s *MemoryStore) CountPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, job := range s.jobs {
		if job.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) setStatus(id uuid.UUID, update func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	update(&job)
	s.jobs[id] = job
	return nil
}
