package request

import (
	"time"

	"barberslot/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	BarberID  uuid.UUID `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
}

func (r CreateHoldRequest) ToParams(userID uuid.UUID) commands.CreateHoldParams {
	return commands.CreateHoldParams{
		UserID:    userID,
		BarberID:  r.BarberID,
		ServiceID: r.ServiceID,
		Start:     r.Start,
		End:       r.End,
	}
}
