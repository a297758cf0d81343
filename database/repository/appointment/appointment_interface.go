package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"wellnest/models"
)

// ErrSlotConflict is returned by ReserveTransactionally when the requested
// window overlaps an appointment that still occupies provider time. Callers
// treat it as retryable: re-fetch the slot list and pick another slot.
var ErrSlotConflict = errors.New("requested slot overlaps an existing appointment")

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByProviderBetween returns the provider's appointments starting in
	// [from, to), excluding cancelled and rejected ones.
	ListByProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error)
	// ReserveTransactionally inserts the appointment inside a transaction
	// that re-checks for overlap. This is the single authority for booking
	// conflicts; slot listing is only advisory.
	ReserveTransactionally(ctx context.Context, appt *models.Appointment) error
	// UpdateStatus sets the appointment status.
	UpdateStatus(ctx context.Context, id, status string) error
}
