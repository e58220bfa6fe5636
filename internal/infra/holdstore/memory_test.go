//go:build unit

package holdstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"barberslot/internal/domain/hold"
	"barberslot/internal/infra"
	"barberslot/internal/infra/holdstore"
	"barberslot/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHold(t *testing.T, userID, barberID uuid.UUID, start time.Time, now time.Time) hold.Hold {
	t.Helper()
	h, err := hold.New(userID, barberID, uuid.New(), start, start.Add(30*time.Minute), now)
	require.NoError(t, err)
	return h
}

func TestMemoryStoreCreate(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	barberID := uuid.New()

	t.Run("disjoint holds coexist", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))
		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot.Add(time.Hour), base)))
	})

	t.Run("overlapping hold rejected", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))

		err := store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base))
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("hold inside the buffer rejected", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))

		// Back to back: 10:30 starts when the first ends, but the
		// buffered intervals collide.
		err := store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot.Add(30*time.Minute), base))
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("other barbers are independent", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))
		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), uuid.New(), slot, base)))
	})

	t.Run("expired hold no longer blocks", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))

		clk.Add(hold.TTL)
		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, clk.Now())))
	})

	t.Run("only one of many concurrent holds wins", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		const n = 16
		contenders := make([]hold.Hold, n)
		for i := range contenders {
			contenders[i] = newHold(t, uuid.New(), barberID, slot, base)
		}

		var wg sync.WaitGroup
		errCh := make(chan error, n)
		for _, h := range contenders {
			wg.Add(1)
			go func(h hold.Hold) {
				defer wg.Done()
				errCh <- store.Create(context.Background(), h)
			}(h)
		}
		wg.Wait()
		close(errCh)

		won := 0
		for err := range errCh {
			if err == nil {
				won++
			} else {
				assert.True(t, infra.IsKind(err, infra.KindConflict))
			}
		}
		assert.Equal(t, 1, won)
	})
}

func TestMemoryStoreRelease(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	barberID := uuid.New()
	userID := uuid.New()

	t.Run("owner releases and frees the window", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		h := newHold(t, userID, barberID, slot, base)
		require.NoError(t, store.Create(context.Background(), h))
		require.NoError(t, store.Release(context.Background(), h.ID, userID))

		require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		h := newHold(t, userID, barberID, slot, base)
		require.NoError(t, store.Create(context.Background(), h))

		err := store.Release(context.Background(), h.ID, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindForbidden))
	})

	t.Run("expired hold reads as missing", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		store := holdstore.NewMemoryStore(clk)

		h := newHold(t, userID, barberID, slot, base)
		require.NoError(t, store.Create(context.Background(), h))

		clk.Add(hold.TTL)
		err := store.Release(context.Background(), h.ID, userID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestMemoryStoreListActive(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	barberID := uuid.New()

	clk := clock.NewMockClock(base)
	store := holdstore.NewMemoryStore(clk)

	inRange := newHold(t, uuid.New(), barberID, slot, base)
	require.NoError(t, store.Create(context.Background(), inRange))
	require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot.Add(4*time.Hour), base)))
	require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), uuid.New(), slot, base)))

	active, err := store.ListActive(context.Background(), barberID, slot, slot.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, inRange.ID, active[0].ID)

	clk.Add(hold.TTL)
	active, err = store.ListActive(context.Background(), barberID, slot, slot.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestMemoryStoreSweep(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	barberID := uuid.New()

	clk := clock.NewMockClock(base)
	store := holdstore.NewMemoryStore(clk)

	require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot, base)))

	clk.Add(2 * time.Minute)
	require.NoError(t, store.Create(context.Background(), newHold(t, uuid.New(), barberID, slot.Add(time.Hour), clk.Now())))

	clk.Add(hold.TTL - 2*time.Minute) // first hold expired, second still live
	removed, err := store.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = store.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
