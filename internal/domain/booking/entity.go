package booking

import (
	"errors"
	"time"

	"barberslot/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration      = errors.New("duration must be positive")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidInitialStatus = errors.New("initial status must be pending, awaiting_payment or confirmed")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

type Booking struct {
	id          uuid.UUID
	barberID    uuid.UUID
	serviceID   uuid.UUID
	optionID    uuid.UUID
	userID      uuid.UUID
	startAt     time.Time
	durationMin int
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBooking builds a booking to be committed. The initial status is a
// policy decision made by the caller from the payment method; the core
// only rejects statuses that make no sense as a starting point.
func NewBooking(
	barberID, serviceID, optionID, userID uuid.UUID,
	startAt time.Time,
	durationMin int,
	initial Status,
) (*Booking, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if !initial.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !initial.IsActive() {
		return nil, ErrInvalidInitialStatus
	}

	return &Booking{
		id:          uuid.New(),
		barberID:    barberID,
		serviceID:   serviceID,
		optionID:    optionID,
		userID:      userID,
		startAt:     startAt,
		durationMin: durationMin,
		status:      initial,
	}, nil
}

func ReconstructBooking(
	id, barberID, serviceID, optionID, userID uuid.UUID,
	startAt time.Time,
	durationMin int,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		barberID:    barberID,
		serviceID:   serviceID,
		optionID:    optionID,
		userID:      userID,
		startAt:     startAt,
		durationMin: durationMin,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Transition moves the booking along a legal lifecycle edge and returns
// the event to dispatch. No state changes when the edge is illegal.
func (b *Booking) Transition(to Status, at time.Time) (Event, error) {
	if !to.IsValid() {
		return Event{}, ErrInvalidStatus
	}
	if !b.status.CanTransition(to) {
		return Event{}, ErrInvalidTransition
	}
	prev := b.status
	b.status = to
	b.updatedAt = at
	return b.event(prev, to, at), nil
}

// CreatedEvent is the event emitted when the booking row is committed.
func (b *Booking) CreatedEvent(at time.Time) Event {
	return b.event("", b.status, at)
}

func (b *Booking) event(prev, next Status, at time.Time) Event {
	return Event{
		Name:           EventNameFor(prev, next),
		BookingID:      b.id,
		BarberID:       b.barberID,
		UserID:         b.userID,
		ServiceID:      b.serviceID,
		PreviousStatus: prev,
		NewStatus:      next,
		StartAt:        b.startAt,
		Timestamp:      at,
	}
}

// Window is the occupied interval [startAt, startAt+duration).
func (b *Booking) Window() schedule.TimeRange {
	return schedule.MustRange(b.startAt, b.startAt.Add(time.Duration(b.durationMin)*time.Minute))
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) BarberID() uuid.UUID  { return b.barberID }
func (b *Booking) ServiceID() uuid.UUID { return b.serviceID }
func (b *Booking) OptionID() uuid.UUID  { return b.optionID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) StartAt() time.Time   { return b.startAt }
func (b *Booking) DurationMin() int     { return b.durationMin }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
