package booking

import (
	"errors"
	"fmt"
)

// ErrProviderNotFound is terminal for the request: there is no provider to
// retry against.
var ErrProviderNotFound = errors.New("provider not found")

// ErrAppointmentNotFound is returned when a cancellation targets an
// appointment that does not exist.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrNotAppointmentOwner is returned when a client tries to cancel an
// appointment booked by someone else.
var ErrNotAppointmentOwner = errors.New("appointment belongs to another client")

// SlotUnavailableError signals that the reservation authority rejected the
// slot because it was taken between listing and confirmation. Callers should
// re-fetch the slot list and retry with another slot; this must never be
// conflated with not-found or malformed-data failures.
type SlotUnavailableError struct {
	Code    string
	Message string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError(msg string) error {
	return &SlotUnavailableError{
		Code:    "slotUnavailable",
		Message: msg,
	}
}

// IsSlotUnavailable reports whether err is a retryable slot conflict.
func IsSlotUnavailable(err error) bool {
	var e *SlotUnavailableError
	return errors.As(err, &e)
}
