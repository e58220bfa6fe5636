package readstore

import (
	"context"
	"errors"

	"barberslot/internal/infra"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ServiceOption resolves the duration-bearing option for a service.
// When optionID is nil the service's default option applies.
func (s *Store) ServiceOption(ctx context.Context, serviceID uuid.UUID, optionID *uuid.UUID) (*shared.ServiceOptionSnapshot, error) {
	var row pgx.Row
	if optionID != nil {
		const q = `
			SELECT id, service_id, name, duration_min
			FROM service_options
			WHERE id = $1 AND service_id = $2`
		row = s.db.QueryRow(ctx, q, *optionID, serviceID)
	} else {
		const q = `
			SELECT id, service_id, name, duration_min
			FROM service_options
			WHERE service_id = $1
			ORDER BY is_default DESC, name
			LIMIT 1`
		row = s.db.QueryRow(ctx, q, serviceID)
	}

	var snap shared.ServiceOptionSnapshot
	err := row.Scan(&snap.ID, &snap.ServiceID, &snap.Name, &snap.DurationMin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service option not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service option", err)
	}
	return &snap, nil
}
