//go:build unit

package hold_test

import (
	"testing"
	"time"

	"barberslot/internal/domain/hold"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	t.Run("expiry is fixed at five minutes", func(t *testing.T) {
		h, err := hold.New(uuid.New(), uuid.New(), uuid.New(), start, start.Add(30*time.Minute), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, h.ID)
		assert.Equal(t, now.Add(5*time.Minute), h.ExpiresAt)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := hold.New(uuid.New(), uuid.New(), uuid.New(), start, start, now)
		assert.ErrorIs(t, err, hold.ErrInvalidWindow)
	})
}

func TestHoldExpired(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	h, err := hold.New(uuid.New(), uuid.New(), uuid.New(), start, start.Add(30*time.Minute), now)
	require.NoError(t, err)

	assert.False(t, h.Expired(now))
	assert.False(t, h.Expired(now.Add(hold.TTL-time.Second)))
	// Expiry instant itself counts as expired.
	assert.True(t, h.Expired(now.Add(hold.TTL)))
	assert.True(t, h.Expired(now.Add(hold.TTL+time.Minute)))
}

func TestHoldWindow(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	h, err := hold.New(uuid.New(), uuid.New(), uuid.New(), start, end, now)
	require.NoError(t, err)

	w := h.Window()
	assert.Equal(t, start, w.Start())
	assert.Equal(t, end, w.End())
}
