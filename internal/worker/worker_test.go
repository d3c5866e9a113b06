package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
	"github.com/wasatchbins/dumpster-leadgen/internal/queue"
)

// Mock email sender
type mockEmailSender struct {
	sendErr error
	sent    []email.Message
}

func (m *mockEmailSender) Send(ctx context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	return m.sendErr
}

// Mock Delivery tracker - tracks what happened to a delivery
type deliveryTracker struct {
	acked    bool
	nacked   bool
	requeued bool
	rejected bool
}

// Mock Acknowledger
type mockAcknowledger struct {
	tracker *deliveryTracker
}

func (m *mockAcknowledger) Ack(tag uint64, multiple bool) error {
	m.tracker.acked = true
	return nil
}

func (m *mockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	m.tracker.nacked = true
	m.tracker.requeued = requeue
	return nil
}

func (m *mockAcknowledger) Reject(tag uint64, requeue bool) error {
	m.tracker.rejected = true
	m.tracker.requeued = requeue
	return nil
}

var _ amqp091.Acknowledger = (*mockAcknowledger)(nil)

// Helper function to create a delivery and tracker
func createTestDelivery(jobID uuid.UUID) (amqp091.Delivery, *deliveryTracker) {
	msg := queue.FollowupSendMessage{
		JobID: jobID,
	}
	body, _ := json.Marshal(msg)

	tracker := &deliveryTracker{}

	delivery := amqp091.Delivery{
		Body:         body,
		Acknowledger: &mockAcknowledger{tracker: tracker},
	}

	return delivery, tracker
}

func newTestWorker(sender *mockEmailSender) (*Worker, *followups.Service) {
	store := followups.NewMemoryStore()
	svc := followups.NewService(store, sender)
	return &Worker{svc: svc}, svc
}

func scheduleTestJob(t *testing.T, svc *followups.Service) uuid.UUID {
	t.Helper()
	job, err := svc.ScheduleFollowup(context.Background(), "dan@example.com", "Dan", "Orem", 0)
	if err != nil {
		t.Fatalf("failed to schedule test job: %v", err)
	}
	return job.ID
}

// Test: Successful job delivery
func TestWorker_ProcessDelivery_Success(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{}
	worker, svc := newTestWorker(sender)
	jobID := scheduleTestJob(t, svc)

	delivery, tracker := createTestDelivery(jobID)

	worker.processDelivery(ctx, delivery)

	if !tracker.acked {
		t.Error("Expected delivery to be acknowledged")
	}

	if len(sender.sent) != 1 {
		t.Fatalf("Expected 1 email to be sent, got %d", len(sender.sent))
	}

	if sender.sent[0].To != "dan@example.com" {
		t.Errorf("Expected email sent to dan@example.com, got %s", sender.sent[0].To)
	}

	job, err := svc.Get(ctx, jobID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if job.Status != followups.StatusSent {
		t.Errorf("Expected job status 'sent', got %s", job.Status)
	}
}

// Test: Send failure - first retry
func TestWorker_ProcessDelivery_SendFailure_FirstRetry(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{sendErr: errors.New("smtp error: network timeout")}
	worker, svc := newTestWorker(sender)
	jobID := scheduleTestJob(t, svc)

	delivery, tracker := createTestDelivery(jobID)

	start := time.Now()
	worker.processDelivery(ctx, delivery)
	if time.Since(start) < time.Second {
		t.Error("Expected a pause before requeueing")
	}

	// Should be nacked for retry
	if !tracker.nacked {
		t.Error("Expected delivery to be nacked")
	}

	if !tracker.requeued {
		t.Error("Expected delivery to be requeued")
	}

	job, err := svc.Get(ctx, jobID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if job.Attempts != 1 {
		t.Errorf("Expected 1 recorded attempt, got %d", job.Attempts)
	}
	if job.LastError != "smtp error: network timeout" {
		t.Errorf("Expected error message to be stored, got %q", job.LastError)
	}
}

// Test: Send failure - max retries reached
func TestWorker_ProcessDelivery_SendFailure_MaxRetriesReached(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{sendErr: errors.New("smtp error: invalid recipient")}
	worker, svc := newTestWorker(sender)
	jobID := scheduleTestJob(t, svc)

	// Two redeliveries already failed; this is the final attempt
	for i := 0; i < 2; i++ {
		delivery, _ := createTestDelivery(jobID)
		worker.processDelivery(ctx, delivery)
	}

	delivery, tracker := createTestDelivery(jobID)
	worker.processDelivery(ctx, delivery)

	// Should be acked (not requeued) since max retries reached
	if !tracker.acked {
		t.Error("Expected delivery to be acknowledged (max retries reached)")
	}

	if tracker.nacked {
		t.Error("Expected delivery NOT to be nacked (max retries reached)")
	}

	job, err := svc.Get(ctx, jobID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if job.Status != followups.StatusFailed {
		t.Errorf("Expected job status 'failed', got %s", job.Status)
	}
}

// Test: Invalid JSON in queue message
func TestWorker_ProcessDelivery_InvalidJSON(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{}
	worker, _ := newTestWorker(sender)

	tracker := &deliveryTracker{}
	delivery := amqp091.Delivery{
		Body:         []byte("invalid json {{{"),
		Acknowledger: &mockAcknowledger{tracker: tracker},
	}

	worker.processDelivery(ctx, delivery)

	// Should be rejected without requeue
	if !tracker.rejected {
		t.Error("Expected delivery to be rejected")
	}

	if tracker.requeued {
		t.Error("Expected delivery NOT to be requeued (invalid JSON)")
	}

	if len(sender.sent) != 0 {
		t.Error("Expected no send attempts for invalid JSON")
	}
}

// Test: Job not found in store
func TestWorker_ProcessDelivery_JobNotFound(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{}
	worker, _ := newTestWorker(sender)

	delivery, tracker := createTestDelivery(uuid.New())

	worker.processDelivery(ctx, delivery)

	// Should be rejected without requeue
	if !tracker.rejected {
		t.Error("Expected delivery to be rejected (job not found)")
	}

	if tracker.requeued {
		t.Error("Expected delivery NOT to be requeued (job missing)")
	}

	if len(sender.sent) != 0 {
		t.Error("Expected no send attempts for missing job")
	}
}

// Test: Redelivery of an already-sent job is acked without a resend
func TestWorker_ProcessDelivery_AlreadySent(t *testing.T) {
	ctx := context.Background()

	sender := &mockEmailSender{}
	worker, svc := newTestWorker(sender)
	jobID := scheduleTestJob(t, svc)

	delivery, _ := createTestDelivery(jobID)
	worker.processDelivery(ctx, delivery)

	redelivery, tracker := createTestDelivery(jobID)
	worker.processDelivery(ctx, redelivery)

	if !tracker.acked {
		t.Error("Expected redelivery to be acknowledged")
	}
	if len(sender.sent) != 1 {
		t.Errorf("Expected 1 email total, got %d (duplicate send on redelivery)", len(sender.sent))
	}
}
