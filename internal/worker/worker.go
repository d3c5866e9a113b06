package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
	"github.com/wasatchbins/dumpster-leadgen/internal/queue"
)

type Worker struct {
	rabbitMQ *queue.RabbitMQ
	svc      *followups.Service
}

func NewWorker(rabbitMQ *queue.RabbitMQ, svc *followups.Service) *Worker {
	return &Worker{
		rabbitMQ: rabbitMQ,
		svc:      svc,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.rabbitMQ.Consume()
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	log.Info().Msg("worker started, waiting for jobs")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("rabbitMQ channel closed")
			}
			w.processDelivery(ctx, d)
		}
	}
}

func (w *Worker) processDelivery(ctx context.Context, d amqp091.Delivery) {
	var msg queue.FollowupSendMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal message")
		d.Reject(false)
		return
	}

	log.Info().Str("job_id", msg.JobID.String()).Msg("processing job")

	err := w.svc.DeliverByID(ctx, msg.JobID)
	if err == nil {
		d.Ack(false)
		return
	}

	if errors.Is(err, followups.ErrJobNotFound) {
		log.Error().Str("job_id", msg.JobID.String()).Msg("job not found, dropping")
		d.Reject(false)
		return
	}

	// The service already did the attempt bookkeeping; look at the job to
	// see whether it went terminal
	job, gerr := w.svc.Get(ctx, msg.JobID)
	if gerr != nil {
		log.Error().Err(gerr).Str("job_id", msg.JobID.String()).Msg("failed to load job after delivery failure")
		d.Nack(false, true)
		return
	}

	if job.Status == followups.StatusFailed {
		log.Warn().Str("job_id", msg.JobID.String()).Msg("max retries reached, giving up")
		d.Ack(false)
		return
	}

	log.Info().Str("job_id", msg.JobID.String()).Int("attempts", job.Attempts).Msg("requeueing for retry")
	// Sleep a bit to prevent tight loop
	time.Sleep(1 * time.Second)
	d.Nack(false, true)
}
