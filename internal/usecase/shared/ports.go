package shared

import (
	"context"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/domain/hold"
	"barberslot/internal/domain/schedule"

	"github.com/google/uuid"
)

// UnitOfWork is the serialization boundary for booking commits and
// status transitions. Within retries on serialization failures and
// deadlocks before surfacing a transient error.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to read stores outside a transaction
	Reads() Reads
}

type Tx interface {
	// LockBarber serializes concurrent writers for one barber within
	// the transaction (advisory lock, released at commit/rollback).
	LockBarber(ctx context.Context, barberID uuid.UUID) error
	Bookings() BookingRepository
	Outbox() OutboxRepository
	Reads() Reads
}

type Reads interface {
	BarberExists(ctx context.Context, barberID uuid.UUID) (bool, error)
	WorkingHoursByBarber(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*schedule.WorkingHourBlock, error)
	ServiceOption(ctx context.Context, serviceID uuid.UUID, optionID *uuid.UUID) (*ServiceOptionSnapshot, error)
	ActiveBookings(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]BookingSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	BookingsByUser(ctx context.Context, userID uuid.UUID) ([]BookingSnapshot, error)
}

// BookingSnapshot is the ledger's read model: enough to run overlap
// checks and render responses without rehydrating the full entity.
type BookingSnapshot struct {
	ID          uuid.UUID
	BarberID    uuid.UUID
	ServiceID   uuid.UUID
	OptionID    uuid.UUID
	UserID      uuid.UUID
	StartAt     time.Time
	DurationMin int
	Status      booking.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s BookingSnapshot) Window() schedule.TimeRange {
	return schedule.MustRange(s.StartAt, s.StartAt.Add(time.Duration(s.DurationMin)*time.Minute))
}

// ServiceOptionSnapshot carries the duration the selected option binds
// to a booking.
type ServiceOptionSnapshot struct {
	ID          uuid.UUID
	ServiceID   uuid.UUID
	Name        string
	DurationMin int
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindForUpdate loads a booking snapshot with a row lock so a
	// status transition cannot race another writer.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, at time.Time) error
}

type OutboxRepository interface {
	// Enqueue records a domain event in the same transaction as the
	// state change that produced it. Dispatch happens asynchronously.
	Enqueue(ctx context.Context, event booking.Event) error
}

// HoldStore owns hold lifecycle. Create must be atomic with respect to
// its own overlap check; every read filters out expired holds.
type HoldStore interface {
	Create(ctx context.Context, h hold.Hold) error
	Release(ctx context.Context, holdID, userID uuid.UUID) error
	ListActive(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]hold.Hold, error)
	// Sweep physically purges expired holds. Storage hygiene only;
	// correctness never depends on it running.
	Sweep(ctx context.Context) (int, error)
}
