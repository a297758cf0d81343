package models

import "time"

// Appointment status values.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentRejected  = "REJECTED"
)

// Appointment is a confirmed or pending reservation of provider time.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`
	ProviderID       string    `bson:"provider_id" json:"providerId"`
	ClientID         string    `bson:"client_id" json:"clientId"`
	DateTime         time.Time `bson:"date_time" json:"dateTime"`
	DurationMinutes  int       `bson:"duration_minutes" json:"durationMinutes"`
	Status           string    `bson:"status" json:"status"`
	ServicePackageID string    `bson:"service_package_id,omitempty" json:"servicePackageId,omitempty"`
	AmountCents      int64     `bson:"amount_cents,omitempty" json:"amountCents,omitempty"`
	Notes            string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// End returns the instant the appointment finishes.
func (a Appointment) End() time.Time {
	return a.DateTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// OccupiesTime reports whether the appointment still holds its window for
// collision purposes. Cancelled and rejected appointments free the slot.
func (a Appointment) OccupiesTime() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentRejected
}

// ReserveSlotRequest is the payload for the atomic reservation call. The
// duration defaults to 60 minutes when omitted. The client is identified by
// the auth context, never by the request body.
type ReserveSlotRequest struct {
	ProviderID       string    `json:"providerId" binding:"required"`
	ClientID         string    `json:"-"`
	DateTime         time.Time `json:"dateTime" binding:"required"`
	DurationMinutes  int       `json:"durationMinutes"`
	ServicePackageID string    `json:"servicePackageId,omitempty"`
	AmountCents      int64     `json:"amountCents,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}
