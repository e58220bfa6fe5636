//go:build unit

package dispatch_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/infra/dispatch"
	"barberslot/internal/infra/repository"
	"barberslot/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	jobs []repository.OutboxJob

	reclaimCutoff time.Time
	reclaimed     int64
	delivered     []uuid.UUID
	failed        []uuid.UUID
	failedNextRun map[uuid.UUID]time.Time
}

func newFakeQueue(jobs ...repository.OutboxJob) *fakeQueue {
	return &fakeQueue{jobs: jobs, failedNextRun: map[uuid.UUID]time.Time{}}
}

func (q *fakeQueue) ClaimPending(_ context.Context, _ int32) ([]repository.OutboxJob, error) {
	return q.jobs, nil
}

func (q *fakeQueue) ReclaimStale(_ context.Context, cutoff time.Time) (int64, error) {
	q.reclaimCutoff = cutoff
	return q.reclaimed, nil
}

func (q *fakeQueue) MarkDelivered(_ context.Context, id uuid.UUID) error {
	q.delivered = append(q.delivered, id)
	return nil
}

func (q *fakeQueue) MarkFailed(_ context.Context, id uuid.UUID, _ string, nextRun time.Time) error {
	q.failed = append(q.failed, id)
	q.failedNextRun[id] = nextRun
	return nil
}

func eventJob(t *testing.T, attempts int32) repository.OutboxJob {
	t.Helper()
	payload, err := json.Marshal(booking.Event{
		Name:      booking.EventCreated,
		BookingID: uuid.New(),
		BarberID:  uuid.New(),
		UserID:    uuid.New(),
		ServiceID: uuid.New(),
		NewStatus: booking.StatusPending,
		StartAt:   time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		Timestamp: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return repository.OutboxJob{ID: uuid.New(), Topic: booking.EventCreated, Payload: payload, Attempts: attempts}
}

func newWorker(queue dispatch.Queue, webhookURL string, clk clock.Clock) *dispatch.Worker {
	webhook := dispatch.NewWebhookSender(webhookURL, time.Second)
	live := dispatch.NewLivePublisher(nil, "")
	return dispatch.NewWorker(queue, webhook, live, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDrainOnce(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	t.Run("reclaims stalled claims before draining", func(t *testing.T) {
		queue := newFakeQueue()
		queue.reclaimed = 2
		worker := newWorker(queue, "", clock.NewMockClock(now))

		worker.DrainOnce(context.Background())

		assert.Equal(t, now.Add(-5*time.Minute), queue.reclaimCutoff)
	})

	t.Run("acknowledges delivered jobs", func(t *testing.T) {
		var received int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			received++
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		job := eventJob(t, 0)
		queue := newFakeQueue(job)
		worker := newWorker(queue, server.URL, clock.NewMockClock(now))

		worker.DrainOnce(context.Background())

		assert.Equal(t, 1, received)
		assert.Equal(t, []uuid.UUID{job.ID}, queue.delivered)
		assert.Empty(t, queue.failed)
	})

	t.Run("requeues failed delivery with growing delay", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fresh := eventJob(t, 0)
		worn := eventJob(t, 3)
		exhausted := eventJob(t, 20)
		queue := newFakeQueue(fresh, worn, exhausted)
		worker := newWorker(queue, server.URL, clock.NewMockClock(now))

		worker.DrainOnce(context.Background())

		require.Len(t, queue.failed, 3)
		assert.Equal(t, now.Add(30*time.Second), queue.failedNextRun[fresh.ID])
		assert.Equal(t, now.Add(4*time.Minute), queue.failedNextRun[worn.ID])
		assert.Equal(t, now.Add(time.Hour), queue.failedNextRun[exhausted.ID])
		assert.Empty(t, queue.delivered)
	})

	t.Run("parks undecodable payloads", func(t *testing.T) {
		job := repository.OutboxJob{ID: uuid.New(), Topic: "booking.created", Payload: []byte("{broken")}
		queue := newFakeQueue(job)
		worker := newWorker(queue, "", clock.NewMockClock(now))

		worker.DrainOnce(context.Background())

		assert.Equal(t, []uuid.UUID{job.ID}, queue.delivered)
		assert.Empty(t, queue.failed)
	})
}
