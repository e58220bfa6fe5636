package queries

import (
	"context"
	"time"

	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingView is the read model returned to API callers.
type BookingView struct {
	ID          uuid.UUID `json:"id"`
	BarberID    uuid.UUID `json:"barber_id"`
	ServiceID   uuid.UUID `json:"service_id"`
	OptionID    uuid.UUID `json:"option_id"`
	UserID      uuid.UUID `json:"user_id"`
	StartAt     time.Time `json:"start_at"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	reads shared.Reads
}

func NewBookingQueries(reads shared.Reads) BookingQueries {
	return &bookingQueriesImpl{reads: reads}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	snap, err := q.reads.BookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errs.ErrBookingNotFound
	}
	return viewFromSnapshot(*snap), nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	snaps, err := q.reads.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]*BookingView, len(snaps))
	for i, s := range snaps {
		views[i] = viewFromSnapshot(s)
	}
	return views, nil
}

func viewFromSnapshot(s shared.BookingSnapshot) *BookingView {
	return &BookingView{
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
