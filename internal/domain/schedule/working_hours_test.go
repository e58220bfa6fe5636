//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"barberslot/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingHourBlockValidate(t *testing.T) {
	base := func() schedule.WorkingHourBlock {
		return schedule.WorkingHourBlock{
			BarberID: uuid.New(),
			Weekday:  time.Monday,
			Hours:    schedule.MinuteRange{Start: 9 * 60, End: 18 * 60},
			Pauses:   []schedule.MinuteRange{{Start: 12 * 60, End: 13 * 60}},
		}
	}

	cases := []struct {
		name   string
		mutate func(*schedule.WorkingHourBlock)
		errIs  error
	}{
		{
			name:   "valid block with pause",
			mutate: func(*schedule.WorkingHourBlock) {},
		},
		{
			name: "valid block without pauses",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = nil
			},
		},
		{
			name: "hours start equal to end",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Hours = schedule.MinuteRange{Start: 9 * 60, End: 9 * 60}
			},
			errIs: schedule.ErrInvalidBlock,
		},
		{
			name: "hours start after end",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Hours = schedule.MinuteRange{Start: 18 * 60, End: 9 * 60}
			},
			errIs: schedule.ErrInvalidBlock,
		},
		{
			name: "inverted pause",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = []schedule.MinuteRange{{Start: 13 * 60, End: 12 * 60}}
			},
			errIs: schedule.ErrInvalidBlock,
		},
		{
			name: "pause before the block",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = []schedule.MinuteRange{{Start: 8 * 60, End: 10 * 60}}
			},
			errIs: schedule.ErrPauseOutsideBlock,
		},
		{
			name: "pause past the block end",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = []schedule.MinuteRange{{Start: 17 * 60, End: 19 * 60}}
			},
			errIs: schedule.ErrPauseOutsideBlock,
		},
		{
			name: "overlapping pauses",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = []schedule.MinuteRange{
					{Start: 12 * 60, End: 13 * 60},
					{Start: 12*60 + 30, End: 14 * 60},
				}
			},
			errIs: schedule.ErrPausesOverlap,
		},
		{
			name: "touching pauses are disjoint",
			mutate: func(b *schedule.WorkingHourBlock) {
				b.Pauses = []schedule.MinuteRange{
					{Start: 12 * 60, End: 13 * 60},
					{Start: 13 * 60, End: 14 * 60},
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			block := base()
			tc.mutate(&block)
			err := block.Validate()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkingHourBlockAnchoring(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	block := schedule.WorkingHourBlock{
		BarberID: uuid.New(),
		Weekday:  time.Monday,
		Hours:    schedule.MinuteRange{Start: 9 * 60, End: 12 * 60},
		Pauses:   []schedule.MinuteRange{{Start: 10 * 60, End: 10*60 + 30}},
	}

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, loc) // a Monday

	window := block.WindowOn(day, loc)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, loc), window.Start())
	assert.Equal(t, time.Date(2026, 1, 5, 12, 0, 0, 0, loc), window.End())

	pauses := block.PausesOn(day, loc)
	require.Len(t, pauses, 1)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, loc), pauses[0].Start())
	assert.Equal(t, time.Date(2026, 1, 5, 10, 30, 0, 0, loc), pauses[0].End())

	assert.Nil(t, schedule.WorkingHourBlock{Hours: block.Hours}.PausesOn(day, loc))
}
