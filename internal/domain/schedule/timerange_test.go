//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"barberslot/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.UTC)
}

func rng(t *testing.T, startH, startM, endH, endM int) schedule.TimeRange {
	t.Helper()
	r, err := schedule.NewTimeRange(at(startH, startM), at(endH, endM))
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := schedule.NewTimeRange(at(9, 0), at(10, 0))
		require.NoError(t, err)
		assert.Equal(t, at(9, 0), r.Start())
		assert.Equal(t, at(10, 0), r.End())
		assert.Equal(t, time.Hour, r.Duration())
	})

	t.Run("start equal to end", func(t *testing.T) {
		_, err := schedule.NewTimeRange(at(9, 0), at(9, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := schedule.NewTimeRange(at(10, 0), at(9, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
	})
}

func TestTimeRangeOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b schedule.TimeRange
		want bool
	}{
		{
			name: "disjoint ranges",
			a:    rng(t, 9, 0, 10, 0),
			b:    rng(t, 11, 0, 12, 0),
			want: false,
		},
		{
			name: "adjacent ranges do not overlap",
			a:    rng(t, 9, 0, 10, 0),
			b:    rng(t, 10, 0, 11, 0),
			want: false,
		},
		{
			name: "partial overlap",
			a:    rng(t, 9, 0, 10, 0),
			b:    rng(t, 9, 30, 10, 30),
			want: true,
		},
		{
			name: "containment",
			a:    rng(t, 9, 0, 12, 0),
			b:    rng(t, 10, 0, 11, 0),
			want: true,
		},
		{
			name: "identical ranges",
			a:    rng(t, 9, 0, 10, 0),
			b:    rng(t, 9, 0, 10, 0),
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeRangeOverlapsBuffered(t *testing.T) {
	buffer := 10 * time.Minute

	t.Run("adjacent ranges collide once buffered", func(t *testing.T) {
		a := rng(t, 9, 0, 10, 0)
		b := rng(t, 10, 0, 11, 0)
		assert.True(t, a.OverlapsBuffered(b, buffer))
	})

	t.Run("gap larger than combined buffers", func(t *testing.T) {
		a := rng(t, 9, 0, 10, 0)
		b := rng(t, 10, 21, 11, 0)
		assert.False(t, a.OverlapsBuffered(b, buffer))
	})

	t.Run("gap exactly at the buffered boundary", func(t *testing.T) {
		// Buffered ends touch at 10:10 / starts at 10:10; half-open, no overlap.
		a := rng(t, 9, 0, 10, 0)
		b := rng(t, 10, 20, 11, 0)
		assert.False(t, a.OverlapsBuffered(b, buffer))
	})

	t.Run("gap one minute inside the buffered boundary", func(t *testing.T) {
		a := rng(t, 9, 0, 10, 0)
		b := rng(t, 10, 19, 11, 0)
		assert.True(t, a.OverlapsBuffered(b, buffer))
	})
}

func TestTimeRangeExpand(t *testing.T) {
	r := rng(t, 10, 0, 10, 30).Expand(10 * time.Minute)
	assert.Equal(t, at(9, 50), r.Start())
	assert.Equal(t, at(10, 40), r.End())
}

func TestTimeRangeContains(t *testing.T) {
	outer := rng(t, 9, 0, 12, 0)
	assert.True(t, outer.Contains(rng(t, 9, 0, 12, 0)))
	assert.True(t, outer.Contains(rng(t, 10, 0, 11, 0)))
	assert.False(t, outer.Contains(rng(t, 8, 59, 10, 0)))
	assert.False(t, outer.Contains(rng(t, 11, 0, 12, 1)))
}

func TestSubtractAll(t *testing.T) {
	t.Run("no exclusions", func(t *testing.T) {
		parts := schedule.SubtractAll(rng(t, 9, 0, 12, 0), nil)
		require.Len(t, parts, 1)
		assert.Equal(t, at(9, 0), parts[0].Start())
		assert.Equal(t, at(12, 0), parts[0].End())
	})

	t.Run("exclusion splits the range", func(t *testing.T) {
		parts := schedule.SubtractAll(rng(t, 9, 0, 12, 0), []schedule.TimeRange{rng(t, 10, 0, 10, 30)})
		require.Len(t, parts, 2)
		assert.Equal(t, at(9, 0), parts[0].Start())
		assert.Equal(t, at(10, 0), parts[0].End())
		assert.Equal(t, at(10, 30), parts[1].Start())
		assert.Equal(t, at(12, 0), parts[1].End())
	})

	t.Run("exclusion covering everything", func(t *testing.T) {
		parts := schedule.SubtractAll(rng(t, 9, 0, 12, 0), []schedule.TimeRange{rng(t, 8, 0, 13, 0)})
		assert.Empty(t, parts)
	})

	t.Run("overlapping exclusions", func(t *testing.T) {
		parts := schedule.SubtractAll(rng(t, 9, 0, 12, 0), []schedule.TimeRange{
			rng(t, 9, 30, 10, 30),
			rng(t, 10, 0, 11, 0),
		})
		require.Len(t, parts, 2)
		assert.Equal(t, at(9, 0), parts[0].Start())
		assert.Equal(t, at(9, 30), parts[0].End())
		assert.Equal(t, at(11, 0), parts[1].Start())
		assert.Equal(t, at(12, 0), parts[1].End())
	})
}

func TestOverlapsAny(t *testing.T) {
	candidate := rng(t, 10, 0, 10, 30)
	assert.True(t, schedule.OverlapsAny(candidate, []schedule.TimeRange{rng(t, 10, 15, 11, 0)}))
	assert.False(t, schedule.OverlapsAny(candidate, []schedule.TimeRange{rng(t, 10, 30, 11, 0)}))
	assert.False(t, schedule.OverlapsAny(candidate, nil))
}
