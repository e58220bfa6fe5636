package readstore

import (
	"context"
	"errors"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/infra"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, barber_id, service_id, option_id, user_id, start_at, duration_min, status, created_at, updated_at`

// ActiveBookings returns non-cancelled, non-completed bookings whose raw
// window intersects [from, to). Callers pad the range when they need
// buffered comparisons.
func (s *Store) ActiveBookings(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]shared.BookingSnapshot, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE barber_id = $1
		  AND status = ANY($2)
		  AND start_at < $3
		  AND start_at + make_interval(mins => duration_min) > $4
		ORDER BY start_at`

	statuses := make([]string, 0, 3)
	for _, st := range booking.ActiveStatuses() {
		statuses = append(statuses, st.String())
	}

	rows, err := s.db.Query(ctx, q, barberID, statuses, to, from)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (s *Store) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	snap, err := scanBooking(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return snap, nil
}

func (s *Store) BookingsByUser(ctx context.Context, userID uuid.UUID) ([]shared.BookingSnapshot, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_at DESC`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]shared.BookingSnapshot, error) {
	var out []shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	var status string
	err := row.Scan(
		&snap.ID, &snap.BarberID, &snap.ServiceID, &snap.OptionID, &snap.UserID,
		&snap.StartAt, &snap.DurationMin, &status, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}
