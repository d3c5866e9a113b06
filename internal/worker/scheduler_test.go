package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
)

type mockPublisher struct {
	publishErr error
	published  []uuid.UUID
}

func (m *mockPublisher) PublishFollowupSend(jobID uuid.UUID) error {
	m.published = append(m.published, jobID)
	return m.publishErr
}

var _ Publisher = (*mockPublisher)(nil)

// Test: due jobs are published once and not picked up by the next tick
func TestScheduler_PublishesDueJobs(t *testing.T) {
	sender := &mockEmailSender{}
	store := followups.NewMemoryStore()
	svc := followups.NewService(store, sender)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		job, err := svc.ScheduleFollowup(context.Background(), "dan@example.com", "Dan", "Orem", 0)
		if err != nil {
			t.Fatalf("failed to schedule job: %v", err)
		}
		ids = append(ids, job.ID)
	}

	pub := &mockPublisher{}
	sched := NewScheduler(svc, pub, 0)

	sched.processDueJobs()

	if len(pub.published) != 3 {
		t.Fatalf("published %d jobs, want 3", len(pub.published))
	}
	seen := make(map[uuid.UUID]bool)
	for _, id := range pub.published {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("job %s was never published", id)
		}
	}

	// Claimed jobs must not be republished on the next tick
	sched.processDueJobs()
	if len(pub.published) != 3 {
		t.Errorf("second tick republished jobs: total %d, want 3", len(pub.published))
	}

	// The scheduler only publishes; nothing should have been sent
	if len(sender.sent) != 0 {
		t.Errorf("scheduler sent %d emails directly, want 0", len(sender.sent))
	}
}

// Test: a job that fails to publish is released and retried next tick
func TestScheduler_ReleasesJobWhenPublishFails(t *testing.T) {
	sender := &mockEmailSender{}
	store := followups.NewMemoryStore()
	svc := followups.NewService(store, sender)

	job, err := svc.ScheduleFollowup(context.Background(), "dan@example.com", "Dan", "Orem", 0)
	if err != nil {
		t.Fatalf("failed to schedule job: %v", err)
	}

	pub := &mockPublisher{publishErr: errors.New("channel closed")}
	sched := NewScheduler(svc, pub, 0)

	sched.processDueJobs()

	if len(pub.published) != 1 {
		t.Fatalf("publish attempts = %d, want 1", len(pub.published))
	}

	got, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if got.Status != followups.StatusPending {
		t.Fatalf("job status = %s, want pending after failed publish", got.Status)
	}

	// The broker recovers; the next tick must pick the job up again
	pub.publishErr = nil
	sched.processDueJobs()

	if len(pub.published) != 2 {
		t.Errorf("publish attempts = %d, want 2", len(pub.published))
	}
	if pub.published[1] != job.ID {
		t.Errorf("republished job = %s, want %s", pub.published[1], job.ID)
	}
}

// Test: without a queue the scheduler delivers inline
func TestScheduler_InlineDeliveryWithoutQueue(t *testing.T) {
	sender := &mockEmailSender{}
	store := followups.NewMemoryStore()
	svc := followups.NewService(store, sender)

	job, err := svc.ScheduleFollowup(context.Background(), "amy@example.com", "Amy", "Sandy", 0)
	if err != nil {
		t.Fatalf("failed to schedule job: %v", err)
	}

	sched := NewScheduler(svc, nil, 0)
	sched.processDueJobs()

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}

	got, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if got.Status != followups.StatusSent {
		t.Errorf("job status = %s, want sent", got.Status)
	}
}
