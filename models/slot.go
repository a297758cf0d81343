package models

import "time"

// AvailabilitySlot is a concrete bookable interval on the queried day.
// Slots are computed on demand and never persisted; the engine only emits
// slots that are actually available.
type AvailabilitySlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
