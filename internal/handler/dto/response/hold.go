package response

import (
	"time"

	"barberslot/internal/domain/hold"

	"github.com/google/uuid"
)

type HoldResponse struct {
	ID        uuid.UUID `json:"id"`
	BarberID  uuid.UUID `json:"barberId"`
	ServiceID uuid.UUID `json:"serviceId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromHold(h *hold.Hold) *HoldResponse {
	return &HoldResponse{
		ID:        h.ID,
		BarberID:  h.BarberID,
		ServiceID: h.ServiceID,
		Start:     h.Start,
		End:       h.End,
		ExpiresAt: h.ExpiresAt,
	}
}
