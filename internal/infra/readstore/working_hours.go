package readstore

import (
	"context"
	"errors"
	"time"

	"barberslot/internal/domain/schedule"
	"barberslot/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) BarberExists(ctx context.Context, barberID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM barbers WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, barberID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check barber existence", err)
	}
	return exists, nil
}

// WorkingHoursByBarber returns the barber's recurring block for the
// weekday, with pauses, or nil when the barber does not work that day.
func (s *Store) WorkingHoursByBarber(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*schedule.WorkingHourBlock, error) {
	const blockQ = `
		SELECT id, start_min, end_min
		FROM working_hours
		WHERE barber_id = $1 AND weekday = $2`

	var blockID uuid.UUID
	var startMin, endMin int
	err := s.db.QueryRow(ctx, blockQ, barberID, int(weekday)).Scan(&blockID, &startMin, &endMin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find working hours", err)
	}

	const pausesQ = `
		SELECT start_min, end_min
		FROM working_hour_pauses
		WHERE working_hour_id = $1
		ORDER BY start_min`

	rows, err := s.db.Query(ctx, pausesQ, blockID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find working hour pauses", err)
	}
	defer rows.Close()

	var pauses []schedule.MinuteRange
	for rows.Next() {
		var p schedule.MinuteRange
		if err := rows.Scan(&p.Start, &p.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pause", err)
		}
		pauses = append(pauses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pauses", err)
	}

	return &schedule.WorkingHourBlock{
		BarberID: barberID,
		Weekday:  weekday,
		Hours:    schedule.MinuteRange{Start: startMin, End: endMin},
		Pauses:   pauses,
	}, nil
}
