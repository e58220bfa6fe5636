package hold

import (
	"errors"
	"time"

	"barberslot/internal/domain/schedule"

	"github.com/google/uuid"
)

// TTL is fixed: a hold bridges slot selection and commit in the booking
// UI flow, nothing more. There is no renewal; a lapsed hold must be
// re-requested.
const TTL = 5 * time.Minute

var ErrInvalidWindow = errors.New("hold start must be before end")

// Hold is a short-lived advisory reservation of a slot for one user.
// Only the conflict detector has commit authority; a hold merely keeps
// other users from being offered the same window while its owner pays.
type Hold struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	Start     time.Time
	End       time.Time
	ExpiresAt time.Time
}

func New(userID, barberID, serviceID uuid.UUID, start, end, now time.Time) (Hold, error) {
	if !start.Before(end) {
		return Hold{}, ErrInvalidWindow
	}
	return Hold{
		ID:        uuid.New(),
		UserID:    userID,
		BarberID:  barberID,
		ServiceID: serviceID,
		Start:     start,
		End:       end,
		ExpiresAt: now.Add(TTL),
	}, nil
}

// Expired reports whether the hold must be treated as absent. Expiry is
// enforced lazily on every read; no caller may observe an expired hold
// as active.
func (h Hold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

func (h Hold) Window() schedule.TimeRange {
	return schedule.MustRange(h.Start, h.End)
}
