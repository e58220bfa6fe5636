package response

import (
	"time"

	"barberslot/internal/usecase/queries"
)

type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

type AvailabilityResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func FromSlots(slots []queries.Slot) AvailabilityResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Start: s.Start, End: s.End, Available: s.Available}
	}
	return AvailabilityResponse{Slots: out}
}
