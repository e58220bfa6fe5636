package booking

import (
	"time"

	"github.com/google/uuid"
)

// Event names as received by the webhook dispatcher.
const (
	EventCreated       = "booking.created"
	EventConfirmed     = "booking.confirmed"
	EventCancelled     = "booking.cancelled"
	EventCompleted     = "booking.completed"
	EventStatusChanged = "booking.status_changed"
)

// Event is the domain event emitted on commit and on every lifecycle
// transition. Delivery is at-least-once and asynchronous; emitting the
// event never fails the transition that produced it.
type Event struct {
	Name           string    `json:"event"`
	BookingID      uuid.UUID `json:"booking_id"`
	BarberID       uuid.UUID `json:"barber_id"`
	UserID         uuid.UUID `json:"user_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	PreviousStatus Status    `json:"previous_status,omitempty"`
	NewStatus      Status    `json:"new_status"`
	StartAt        time.Time `json:"date_time"`
	Timestamp      time.Time `json:"timestamp"`
}

// EventNameFor picks the specific event name for well-known edges and
// falls back to the generic status_changed for the rest.
func EventNameFor(prev, next Status) string {
	if prev == "" {
		return EventCreated
	}
	switch next {
	case StatusConfirmed:
		return EventConfirmed
	case StatusCancelled:
		return EventCancelled
	case StatusCompleted:
		return EventCompleted
	default:
		return EventStatusChanged
	}
}
