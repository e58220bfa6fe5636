package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/infra/repository"
	"barberslot/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	drainBatchSize    = int32(50)
	retryBaseDelay    = 30 * time.Second
	retryMaxDelay     = time.Hour
	staleClaimTimeout = 5 * time.Minute
)

// Queue is the slice of the outbox the worker drives.
type Queue interface {
	ClaimPending(ctx context.Context, limit int32) ([]repository.OutboxJob, error)
	ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, nextRun time.Time) error
}

// Worker drains the notification outbox. Each claimed job is delivered
// to the webhook endpoint and announced on the live channel; failures
// requeue the job with a growing delay, so delivery stays at-least-once.
type Worker struct {
	outbox  Queue
	webhook *WebhookSender
	live    *LivePublisher
	clock   clock.Clock
	logger  *slog.Logger
}

func NewWorker(
	outbox Queue,
	webhook *WebhookSender,
	live *LivePublisher,
	clk clock.Clock,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		outbox:  outbox,
		webhook: webhook,
		live:    live,
		clock:   clk,
		logger:  logger,
	}
}

// DrainOnce claims one batch of due jobs and delivers them. It keeps
// going after individual job failures; only the claim itself aborts
// the pass. Jobs another worker claimed but never acknowledged are
// returned to the queue first.
func (w *Worker) DrainOnce(ctx context.Context) {
	reclaimed, err := w.outbox.ReclaimStale(ctx, w.clock.Now().Add(-staleClaimTimeout))
	if err != nil {
		w.logger.Error("failed to reclaim stalled notification jobs", "error", err)
	} else if reclaimed > 0 {
		w.logger.Warn("reclaimed stalled notification jobs", "count", reclaimed)
	}

	jobs, err := w.outbox.ClaimPending(ctx, drainBatchSize)
	if err != nil {
		w.logger.Error("failed to claim notification jobs", "error", err)
		return
	}

	for _, job := range jobs {
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job repository.OutboxJob) {
	var event booking.Event
	if err := json.Unmarshal(job.Payload, &event); err != nil {
		// Undecodable payloads never become deliverable; park them.
		w.logger.Error("dropping malformed notification job",
			"job_id", job.ID, "topic", job.Topic, "error", err)
		if err := w.outbox.MarkDelivered(ctx, job.ID); err != nil {
			w.logger.Error("failed to park malformed job", "job_id", job.ID, "error", err)
		}
		return
	}

	if err := w.webhook.Send(ctx, event); err != nil {
		nextRun := w.clock.Now().Add(backoffDelay(job.Attempts))
		w.logger.Warn("webhook delivery failed",
			"job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts, "error", err)
		if err := w.outbox.MarkFailed(ctx, job.ID, err.Error(), nextRun); err != nil {
			w.logger.Error("failed to requeue job", "job_id", job.ID, "error", err)
		}
		return
	}

	// Live updates ride along with delivery; losing one is harmless.
	if err := w.live.Publish(ctx, event); err != nil {
		w.logger.Warn("live publish failed", "job_id", job.ID, "error", err)
	}

	if err := w.outbox.MarkDelivered(ctx, job.ID); err != nil {
		w.logger.Error("failed to mark job delivered", "job_id", job.ID, "error", err)
	}
}

func backoffDelay(attempts int32) time.Duration {
	delay := retryBaseDelay
	for i := int32(0); i < attempts && delay < retryMaxDelay; i++ {
		delay *= 2
	}
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
