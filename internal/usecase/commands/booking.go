package commands

import (
	"context"
	"log/slog"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/domain/schedule"
	"barberslot/internal/domain/user"
	"barberslot/internal/infra"
	"barberslot/internal/pkg/clock"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/queries"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type CommitBookingParams struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	OptionID  *uuid.UUID
	UserID    uuid.UUID
	Start     time.Time
	// HoldID, when set, names the caller's own hold being converted.
	// That hold is excluded from the conflict check; every other active
	// hold still blocks.
	HoldID *uuid.UUID
	// InitialStatus is a payment-policy decision made by the caller:
	// cash flows start at pending or confirmed, online payment at
	// awaiting_payment.
	InitialStatus booking.Status
}

// Actor identifies who is requesting a lifecycle transition.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

type BookingCommands interface {
	CommitBooking(ctx context.Context, params CommitBookingParams) (*queries.BookingView, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	holds shared.HoldStore
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, holds shared.HoldStore, clock clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		holds: holds,
		clock: clock,
	}
}

// CommitBooking is the authoritative gate for turning a slot into a
// booking row. The overlap re-check and the insert run inside one
// transaction serialized per barber, so of two concurrent overlapping
// commits exactly one wins. Holds are advisory and re-checked here even
// when the caller presents one.
func (b *bookingCommandsImpl) CommitBooking(ctx context.Context, params CommitBookingParams) (*queries.BookingView, error) {
	if params.BarberID == uuid.Nil || params.ServiceID == uuid.Nil || params.UserID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing id"), errs.ErrValidation)
	}
	if params.Start.IsZero() {
		return nil, errs.Mark(errs.New("missing start time"), errs.ErrValidation)
	}

	exists, err := b.uow.Reads().BarberExists(ctx, params.BarberID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}
	if !exists {
		return nil, errs.ErrBarberNotFound
	}

	option, err := b.uow.Reads().ServiceOption(ctx, params.ServiceID, params.OptionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}

	entity, err := booking.NewBooking(
		params.BarberID, params.ServiceID, option.ID, params.UserID,
		params.Start, option.DurationMin, params.InitialStatus,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	window := entity.Window()

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBarber(ctx, params.BarberID); err != nil {
			return err
		}

		// State may have changed since availability was computed.
		pad := 2 * schedule.BookingBuffer
		existing, err := tx.Reads().ActiveBookings(ctx, params.BarberID, window.Start().Add(-pad), window.End().Add(pad))
		if err != nil {
			return err
		}
		for _, other := range existing {
			if window.OverlapsBuffered(other.Window(), schedule.BookingBuffer) {
				return errs.ErrSlotUnavailable
			}
		}

		active, err := b.holds.ListActive(ctx, params.BarberID, window.Start(), window.End())
		if err != nil {
			return err
		}
		for _, h := range active {
			if params.HoldID != nil && h.ID == *params.HoldID && h.UserID == params.UserID {
				continue
			}
			if window.Overlaps(h.Window()) {
				return errs.ErrSlotUnavailable
			}
		}

		if err := tx.Bookings().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrSlotUnavailable
			}
			return err
		}

		return tx.Outbox().Enqueue(ctx, entity.CreatedEvent(b.clock.Now()))
	})
	if err != nil {
		return nil, err
	}

	// The hold served its purpose. Releasing is best-effort: expiry
	// cleans up after a failure here.
	if params.HoldID != nil {
		if err := b.holds.Release(ctx, *params.HoldID, params.UserID); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("failed to release hold after commit",
				"hold_id", params.HoldID.String(), "error", err.Error())
		}
	}

	snap, err := b.uow.Reads().BookingByID(ctx, entity.ID())
	if err != nil || snap == nil {
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}
	return snapshotToView(*snap), nil
}

func (b *bookingCommandsImpl) Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return b.transition(ctx, bookingID, actor, booking.StatusConfirmed)
}

func (b *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return b.transition(ctx, bookingID, actor, booking.StatusCancelled)
}

func (b *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return b.transition(ctx, bookingID, actor, booking.StatusCompleted)
}

// transition commits the status change and enqueues the resulting event
// in the same transaction. Dispatch to webhooks and live subscribers is
// drained asynchronously and can never fail the transition.
func (b *bookingCommandsImpl) transition(ctx context.Context, bookingID uuid.UUID, actor Actor, to booking.Status) (*queries.BookingView, error) {
	if bookingID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing booking id"), errs.ErrValidation)
	}

	var updated *shared.BookingSnapshot
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if snap == nil {
			return errs.ErrBookingNotFound
		}

		if err := authorizeTransition(snap, actor, to); err != nil {
			return err
		}

		entity := booking.ReconstructBooking(
			snap.ID, snap.BarberID, snap.ServiceID, snap.OptionID, snap.UserID,
			snap.StartAt, snap.DurationMin, snap.Status, snap.CreatedAt, snap.UpdatedAt,
		)
		now := b.clock.Now()
		event, err := entity.Transition(to, now)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Bookings().UpdateStatus(ctx, bookingID, to, now); err != nil {
			return err
		}
		if err := tx.Outbox().Enqueue(ctx, event); err != nil {
			return err
		}

		snap.Status = to
		snap.UpdatedAt = now
		updated = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshotToView(*updated), nil
}

// Customers may cancel their own bookings; confirming and completing is
// shop-side work.
func authorizeTransition(snap *shared.BookingSnapshot, actor Actor, to booking.Status) error {
	if actor.Role.CanManageBookings() {
		return nil
	}
	if to == booking.StatusCancelled && snap.UserID == actor.UserID {
		return nil
	}
	return errs.ErrBookingForbidden
}

func snapshotToView(s shared.BookingSnapshot) *queries.BookingView {
	return &queries.BookingView{
		ID:          s.ID,
		BarberID:    s.BarberID,
		ServiceID:   s.ServiceID,
		OptionID:    s.OptionID,
		UserID:      s.UserID,
		StartAt:     s.StartAt,
		DurationMin: s.DurationMin,
		Status:      s.Status.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
