package repository

import (
	"context"
	"errors"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/infra"
	"barberslot/internal/infra/db"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// Create inserts the booking row. The bookings table carries an
// exclusion constraint over the buffered slot range per barber, so even
// if two writers slip past the advisory lock the database rejects the
// loser; that violation surfaces as a conflict kind.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const q = `
		INSERT INTO bookings (id, barber_id, service_id, option_id, user_id, start_at, duration_min, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, q,
		b.ID(), b.BarberID(), b.ServiceID(), b.OptionID(), b.UserID(),
		b.StartAt(), b.DurationMin(), b.Status().String(),
	)
	if err != nil {
		if isOverlapViolation(err) {
			return infra.WrapRepoErr("booking window already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// FindForUpdate loads the booking with a row lock held until the
// surrounding transaction ends.
func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = `
		SELECT id, barber_id, service_id, option_id, user_id, start_at, duration_min, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	var snap shared.BookingSnapshot
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(
		&snap.ID, &snap.BarberID, &snap.ServiceID, &snap.OptionID, &snap.UserID,
		&snap.StartAt, &snap.DurationMin, &status, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, at time.Time) error {
	const q = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id, status.String(), at)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	return nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation, pgErrCodeExclusionViolation:
		return true
	default:
		return false
	}
}
