package queries

import (
	"context"
	"time"

	"barberslot/internal/domain/schedule"
	"barberslot/internal/infra"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
)

// Slot is a candidate bookable interval of exactly the requested
// duration. Only available slots are emitted.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

type ComputeAvailabilityParams struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	OptionID  *uuid.UUID
	From      time.Time
	To        time.Time
}

type AvailabilityQueries interface {
	ComputeAvailability(ctx context.Context, params ComputeAvailabilityParams) ([]Slot, error)
}

type availabilityQueriesImpl struct {
	reads shared.Reads
	holds shared.HoldStore
	loc   *time.Location
}

func NewAvailabilityQueries(reads shared.Reads, holds shared.HoldStore, loc *time.Location) AvailabilityQueries {
	return &availabilityQueriesImpl{
		reads: reads,
		holds: holds,
		loc:   loc,
	}
}

// ComputeAvailability walks each calendar day in [From, To] and emits
// the slots a booking of the selected option's duration could occupy:
// stepping the barber's working-hour block at the fixed slot step,
// excluding candidates that straddle a pause, whose buffered interval
// collides with an active booking's buffered interval, or that overlap
// an active hold (any owner; a user is never offered a window they
// already hold). Results are a best-effort snapshot; only commit gives
// a hard guarantee.
func (q *availabilityQueriesImpl) ComputeAvailability(ctx context.Context, params ComputeAvailabilityParams) ([]Slot, error) {
	if params.BarberID == uuid.Nil || params.ServiceID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing barber or service id"), errs.ErrValidation)
	}
	if params.To.Before(params.From) {
		return nil, errs.Mark(errs.New("range end before start"), errs.ErrValidation)
	}

	exists, err := q.reads.BarberExists(ctx, params.BarberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrBarberNotFound
	}

	option, err := q.reads.ServiceOption(ctx, params.ServiceID, params.OptionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, err
	}
	if option.DurationMin <= 0 {
		return []Slot{}, nil
	}
	duration := time.Duration(option.DurationMin) * time.Minute

	first := startOfDay(params.From, q.loc)
	last := startOfDay(params.To, q.loc)

	// One fetch covers every day in the range; the pad keeps bookings
	// whose buffered interval reaches into the range from being missed.
	pad := schedule.BookingBuffer + 24*time.Hour
	bookings, err := q.reads.ActiveBookings(ctx, params.BarberID, first.Add(-pad), last.Add(24*time.Hour).Add(pad))
	if err != nil {
		return nil, err
	}
	holds, err := q.holds.ListActive(ctx, params.BarberID, first, last.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	bookingWindows := make([]schedule.TimeRange, len(bookings))
	for i, b := range bookings {
		bookingWindows[i] = b.Window()
	}
	holdWindows := make([]schedule.TimeRange, len(holds))
	for i, h := range holds {
		holdWindows[i] = h.Window()
	}

	var slots []Slot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		block, err := q.reads.WorkingHoursByBarber(ctx, params.BarberID, day.Weekday())
		if err != nil {
			return nil, err
		}
		if block == nil {
			continue
		}
		slots = append(slots, slotsForDay(block, day, q.loc, duration, bookingWindows, holdWindows)...)
	}
	if slots == nil {
		slots = []Slot{}
	}
	return slots, nil
}

func slotsForDay(
	block *schedule.WorkingHourBlock,
	day time.Time,
	loc *time.Location,
	duration time.Duration,
	bookings, holds []schedule.TimeRange,
) []Slot {
	window := block.WindowOn(day, loc)
	pauses := block.PausesOn(day, loc)

	var out []Slot
	for start := window.Start(); !start.Add(duration).After(window.End()); start = start.Add(schedule.SlotStep) {
		candidate := schedule.MustRange(start, start.Add(duration))

		// Pauses are hard exclusions: a slot may not straddle one even
		// partially.
		if schedule.OverlapsAny(candidate, pauses) {
			continue
		}
		if overlapsAnyBuffered(candidate, bookings) {
			continue
		}
		if schedule.OverlapsAny(candidate, holds) {
			continue
		}

		out = append(out, Slot{Start: candidate.Start(), End: candidate.End(), Available: true})
	}
	return out
}

func overlapsAnyBuffered(candidate schedule.TimeRange, windows []schedule.TimeRange) bool {
	for _, w := range windows {
		if candidate.OverlapsBuffered(w, schedule.BookingBuffer) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
