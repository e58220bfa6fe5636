package booking

// Status is the closed booking lifecycle enumeration. The legacy
// Portuguese vocabulary spoken by older collaborators is mapped at the
// dispatch boundary, never here.
type Status string

const (
	StatusPending         Status = "pending"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusConfirmed       Status = "confirmed"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether a booking in this status blocks the slot it
// occupies. Cancelled and completed bookings free their window.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}

// ActiveStatuses are the statuses whose buffered intervals may never
// overlap for one barber.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAwaitingPayment, StatusConfirmed}
}

// CanTransition encodes the lifecycle edges:
//
//	awaiting_payment -> confirmed  (payment confirmation)
//	pending          -> confirmed  (manual confirmation)
//	confirmed        -> completed  (service delivered)
//	any non-terminal -> cancelled
func (s Status) CanTransition(to Status) bool {
	if to == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending, StatusAwaitingPayment:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusCompleted
	default:
		return false
	}
}
