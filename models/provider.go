package models

import "time"

// Provider is the marketplace profile for a practitioner. Only the fields the
// availability and booking core reads are modelled here; the full profile
// (bio, specialties, media) lives with the directory service.
type Provider struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Email        string       `bson:"email" json:"email"`
	Status       string       `bson:"status" json:"status"` // e.g. "active", "pending"
	Availability Availability `bson:"availability" json:"availability"`
	TokenHash    string       `bson:"token_hash,omitempty" json:"-"`
	FCMToken     string       `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updatedAt"`
}

// Client is the booking-side account, read for notification delivery.
type Client struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	TokenHash string `bson:"token_hash,omitempty" json:"-"`
	FCMToken  string `bson:"fcm_token,omitempty" json:"-"`
}
