package holdstore

import (
	"context"
	"sync"
	"time"

	"barberslot/internal/domain/hold"
	"barberslot/internal/domain/schedule"
	"barberslot/internal/infra"
	"barberslot/internal/pkg/clock"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemoryStore keeps holds in process memory behind one mutex, which
// makes Create atomic with respect to its own overlap check. Correct
// only when a tenant shard is pinned to a single process; multi-instance
// deployments use the redis store.
type MemoryStore struct {
	mu    sync.Mutex
	clock clock.Clock
	byID  map[uuid.UUID]hold.Hold
}

func NewMemoryStore(clk clock.Clock) shared.HoldStore {
	return &MemoryStore{
		clock: clk,
		byID:  make(map[uuid.UUID]hold.Hold),
	}
}

func (s *MemoryStore) Create(_ context.Context, h hold.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	window := h.Window()
	for _, existing := range s.byID {
		if existing.BarberID != h.BarberID || existing.Expired(now) {
			continue
		}
		if window.OverlapsBuffered(existing.Window(), schedule.BookingBuffer) {
			return infra.NewRepoErr("window already held", infra.KindConflict)
		}
	}

	s.byID[h.ID] = h
	return nil
}

func (s *MemoryStore) Release(_ context.Context, holdID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.byID[holdID]
	if !ok || h.Expired(s.clock.Now()) {
		return infra.NewRepoErr("hold not found", infra.KindNotFound)
	}
	if h.UserID != userID {
		return infra.NewRepoErr("hold owned by another user", infra.KindForbidden)
	}

	delete(s.byID, holdID)
	return nil
}

func (s *MemoryStore) ListActive(_ context.Context, barberID uuid.UUID, from, to time.Time) ([]hold.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var out []hold.Hold
	for _, h := range s.byID {
		if h.BarberID != barberID || h.Expired(now) {
			continue
		}
		if h.Start.Before(to) && from.Before(h.End) {
			out = append(out, h)
		}
	}
	return out, nil
}

// Sweep physically removes expired holds. Reads already filter on
// expiry, so this is storage hygiene only.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, h := range s.byID {
		if h.Expired(now) {
			delete(s.byID, id)
			removed++
		}
	}
	return removed, nil
}
