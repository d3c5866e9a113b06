package campaigns

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
)

// BatchStats is the per-batch breakdown inside a BatchResult.
type BatchStats struct {
	Batch  int `json:"batch"`
	Size   int `json:"size"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// BatchResult accumulates delivery counts across all batches of one
// campaign run.
type BatchResult struct {
	TotalClients int          `json:"totalClients"`
	EmailsSent   int          `json:"emailsSent"`
	EmailsFailed int          `json:"emailsFailed"`
	FailedEmails []string     `json:"failedEmails"`
	Batches      []BatchStats `json:"batches"`
}

// SendFunc delivers one personalized message to one client.
type SendFunc func(ctx context.Context, client clients.Client) error

// Batcher chunks a recipient list and pauses between chunks to stay under
// provider rate limits. Sends within a batch are sequential; a single
// failure never aborts the batch.
type Batcher struct {
	BatchSize int
	Pause     time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

func NewBatcher(batchSize int, pause time.Duration) *Batcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Batcher{
		BatchSize: batchSize,
		Pause:     pause,
		sleep:     sleepCtx,
	}
}

// Run delivers to every client in order, pausing between batches but not
// after the last one.
func (b *Batcher) Run(ctx context.Context, list []clients.Client, send SendFunc) BatchResult {
	result := BatchResult{
		TotalClients: len(list),
		FailedEmails: []string{},
		Batches:      []BatchStats{},
	}

	for start := 0; start < len(list); start += b.BatchSize {
		end := start + b.BatchSize
		if end > len(list) {
			end = len(list)
		}
		batch := list[start:end]
		batchNum := start/b.BatchSize + 1

		stats := BatchStats{Batch: batchNum, Size: len(batch)}
		for _, client := range batch {
			if err := send(ctx, client); err != nil {
				log.Warn().Err(err).Str("email", client.Email).Int("batch", batchNum).Msg("delivery failed")
				stats.Failed++
				result.EmailsFailed++
				result.FailedEmails = append(result.FailedEmails, client.Email)
				continue
			}
			stats.Sent++
			result.EmailsSent++
		}
		result.Batches = append(result.Batches, stats)

		if end < len(list) {
			if err := b.sleep(ctx, b.Pause); err != nil {
				log.Warn().Err(err).Msg("batch pause interrupted, stopping run")
				return result
			}
		}
	}

	return result
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
