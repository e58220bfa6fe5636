package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Scheduling errors
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrValidation      = errors.New("validation error")

	// Lookup errors
	ErrBarberNotFound  = errors.New("barber not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrHoldNotFound    = errors.New("hold not found")

	// Hold errors
	ErrHoldForbidden = errors.New("hold owned by another user")

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBookingForbidden  = errors.New("booking owned by another user")

	// Storage errors
	ErrTransientStore = errors.New("transient store failure")
)
