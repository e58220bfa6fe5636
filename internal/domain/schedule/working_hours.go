package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidBlock      = errors.New("working hour block start must be before end")
	ErrPauseOutsideBlock = errors.New("pause must be contained in the block")
	ErrPausesOverlap     = errors.New("pauses must not overlap")
)

// MinuteRange is a half-open [Start, End) interval in minutes from
// midnight, shop-local. Working hours recur weekly as times of day and
// are anchored to concrete instants only when a query names a date.
type MinuteRange struct {
	Start int
	End   int
}

func (m MinuteRange) On(day time.Time, loc *time.Location) TimeRange {
	y, mo, d := day.In(loc).Date()
	midnight := time.Date(y, mo, d, 0, 0, 0, 0, loc)
	return TimeRange{
		start: midnight.Add(time.Duration(m.Start) * time.Minute),
		end:   midnight.Add(time.Duration(m.End) * time.Minute),
	}
}

// WorkingHourBlock is one recurring weekly availability window for a
// barber, with nested pause intervals. The scheduling core treats it as
// read-only input; the admin surface owns mutation.
type WorkingHourBlock struct {
	BarberID uuid.UUID
	Weekday  time.Weekday
	Hours    MinuteRange
	Pauses   []MinuteRange
}

// Validate enforces the block invariants: start < end, every pause
// contained in the block, pauses pairwise disjoint.
func (b WorkingHourBlock) Validate() error {
	if b.Hours.Start >= b.Hours.End {
		return ErrInvalidBlock
	}
	for _, p := range b.Pauses {
		if p.Start >= p.End {
			return ErrInvalidBlock
		}
		if p.Start < b.Hours.Start || p.End > b.Hours.End {
			return ErrPauseOutsideBlock
		}
	}
	for i, p := range b.Pauses {
		for _, q := range b.Pauses[i+1:] {
			if p.Start < q.End && q.Start < p.End {
				return ErrPausesOverlap
			}
		}
	}
	return nil
}

// WindowOn anchors the block to a concrete day.
func (b WorkingHourBlock) WindowOn(day time.Time, loc *time.Location) TimeRange {
	return b.Hours.On(day, loc)
}

// PausesOn anchors the pauses to a concrete day.
func (b WorkingHourBlock) PausesOn(day time.Time, loc *time.Location) []TimeRange {
	if len(b.Pauses) == 0 {
		return nil
	}
	out := make([]TimeRange, len(b.Pauses))
	for i, p := range b.Pauses {
		out[i] = p.On(day, loc)
	}
	return out
}
