package request

import (
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	BarberID  uuid.UUID  `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID  `json:"service_id" binding:"required"`
	OptionID  *uuid.UUID `json:"option_id,omitempty"`
	Start     time.Time  `json:"start" binding:"required"`
	HoldID    *uuid.UUID `json:"hold_id,omitempty"`
	// InitialStatus reflects the payment flow: "pending" or "confirmed"
	// for in-shop payment, "awaiting_payment" for online checkout.
	// Defaults to pending.
	InitialStatus string `json:"initial_status,omitempty"`
}

func (r CreateBookingRequest) ToParams(userID uuid.UUID) (commands.CommitBookingParams, error) {
	initial := booking.StatusPending
	if r.InitialStatus != "" {
		initial = booking.Status(r.InitialStatus)
		if !initial.IsValid() || !initial.IsActive() {
			return commands.CommitBookingParams{}, booking.ErrInvalidInitialStatus
		}
	}

	return commands.CommitBookingParams{
		BarberID:      r.BarberID,
		ServiceID:     r.ServiceID,
		OptionID:      r.OptionID,
		UserID:        userID,
		Start:         r.Start,
		HoldID:        r.HoldID,
		InitialStatus: initial,
	}, nil
}
