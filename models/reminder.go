package models

// ReminderPayload is the asynq task body for a scheduled appointment reminder.
type ReminderPayload struct {
	ReminderID    string `json:"reminderId"`
	Target        string `json:"target"` // "client" or "provider"
	ID            string `json:"id"`     // recipient account ID
	AppointmentID string `json:"appointmentId"`
	FireDate      string `json:"fireDate"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
