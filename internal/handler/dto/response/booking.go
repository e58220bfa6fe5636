package response

import (
	"time"

	"barberslot/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	BarberID    uuid.UUID `json:"barberId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	OptionID    uuid.UUID `json:"optionId"`
	UserID      uuid.UUID `json:"userId"`
	StartAt     time.Time `json:"startAt"`
	DurationMin int       `json:"durationMin"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:          v.ID,
		BarberID:    v.BarberID,
		ServiceID:   v.ServiceID,
		OptionID:    v.OptionID,
		UserID:      v.UserID,
		StartAt:     v.StartAt,
		DurationMin: v.DurationMin,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
