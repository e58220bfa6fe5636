package repository

import (
	"context"
	"encoding/json"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/infra"
	"barberslot/internal/infra/db"

	"github.com/google/uuid"
)

// OutboxRepository persists domain events in the same transaction as
// the state change that produced them. The dispatch worker drains the
// table afterwards, giving at-least-once delivery without ever letting
// a dispatch failure reach the write path.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

type OutboxJob struct {
	ID       uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int32
}

func (r *OutboxRepository) Enqueue(ctx context.Context, event booking.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal event", err)
	}

	const q = `
		INSERT INTO notification_jobs (id, topic, payload, run_at, status)
		VALUES ($1, $2, $3, now(), 'pending')`

	if _, err := r.db.Exec(ctx, q, uuid.New(), event.Name, payload); err != nil {
		return infra.WrapRepoErr("failed to enqueue event", err)
	}
	return nil
}

// ClaimPending atomically flips up to limit due jobs to processing and
// returns them. SKIP LOCKED lets multiple workers drain concurrently
// without double delivery.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit int32) ([]OutboxJob, error) {
	const q = `
		UPDATE notification_jobs
		SET status = 'processing', updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'pending' AND run_at <= now()
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, topic, payload, attempts`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim pending jobs", err)
	}
	defer rows.Close()

	var jobs []OutboxJob
	for rows.Next() {
		var j OutboxJob
		if err := rows.Scan(&j.ID, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read jobs", err)
	}
	return jobs, nil
}

// ReclaimStale returns jobs stuck in processing to pending. A worker
// that dies between claim and acknowledgement strands its batch; the
// visibility cutoff puts those jobs back in rotation, keeping delivery
// at-least-once across crashes.
func (r *OutboxRepository) ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
		UPDATE notification_jobs
		SET status = 'pending', updated_at = now()
		WHERE status = 'processing' AND updated_at < $1`

	tag, err := r.db.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reclaim stale jobs", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OutboxRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE notification_jobs SET status = 'delivered', updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, q, id); err != nil {
		return infra.WrapRepoErr("failed to mark job delivered", err)
	}
	return nil
}

// MarkFailed requeues the job for a later attempt; the dispatcher owns
// the retry schedule.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause string, nextRun time.Time) error {
	const q = `
		UPDATE notification_jobs
		SET status = 'pending', attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, q, id, cause, nextRun); err != nil {
		return infra.WrapRepoErr("failed to mark job failed", err)
	}
	return nil
}
