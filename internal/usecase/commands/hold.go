package commands

import (
	"context"
	"time"

	"barberslot/internal/domain/hold"
	"barberslot/internal/domain/schedule"
	"barberslot/internal/infra"
	"barberslot/internal/pkg/clock"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateHoldParams struct {
	UserID    uuid.UUID
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	Start     time.Time
	End       time.Time
}

type HoldCommands interface {
	CreateHold(ctx context.Context, params CreateHoldParams) (*hold.Hold, error)
	ReleaseHold(ctx context.Context, holdID, userID uuid.UUID) error
}

type holdCommandsImpl struct {
	reads shared.Reads
	holds shared.HoldStore
	clock clock.Clock
}

func NewHoldCommands(uow shared.UnitOfWork, holds shared.HoldStore, clock clock.Clock) HoldCommands {
	return &holdCommandsImpl{
		reads: uow.Reads(),
		holds: holds,
		clock: clock,
	}
}

// CreateHold reserves a window for five minutes. The check against
// committed bookings runs first; the check against other holds is done
// atomically by the store itself. A hold is advisory: commit re-checks
// everything, so a race against a concurrent commit is tolerable here.
func (h *holdCommandsImpl) CreateHold(ctx context.Context, params CreateHoldParams) (*hold.Hold, error) {
	if params.UserID == uuid.Nil || params.BarberID == uuid.Nil || params.ServiceID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing id"), errs.ErrValidation)
	}
	if !params.Start.Before(params.End) {
		return nil, errs.Mark(hold.ErrInvalidWindow, errs.ErrValidation)
	}

	exists, err := h.reads.BarberExists(ctx, params.BarberID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}
	if !exists {
		return nil, errs.ErrBarberNotFound
	}

	window := schedule.MustRange(params.Start, params.End)
	pad := 2 * schedule.BookingBuffer
	bookings, err := h.reads.ActiveBookings(ctx, params.BarberID, params.Start.Add(-pad), params.End.Add(pad))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}
	for _, b := range bookings {
		if window.OverlapsBuffered(b.Window(), schedule.BookingBuffer) {
			return nil, errs.ErrSlotUnavailable
		}
	}

	created, err := hold.New(params.UserID, params.BarberID, params.ServiceID, params.Start, params.End, h.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if err := h.holds.Create(ctx, created); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrSlotUnavailable
		}
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}

	return &created, nil
}

func (h *holdCommandsImpl) ReleaseHold(ctx context.Context, holdID, userID uuid.UUID) error {
	if holdID == uuid.Nil || userID == uuid.Nil {
		return errs.Mark(errs.New("missing id"), errs.ErrValidation)
	}

	if err := h.holds.Release(ctx, holdID, userID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return errs.ErrHoldNotFound
		case infra.IsKind(err, infra.KindForbidden):
			return errs.ErrHoldForbidden
		default:
			return errs.Mark(err, errs.ErrTransientStore)
		}
	}
	return nil
}
