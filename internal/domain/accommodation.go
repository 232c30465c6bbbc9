package domain

import (
	"time"
)

// Accommodation is a listing published by its owner. OwnerID is always set
// from the authenticated session, never from client input, and is never
// reassigned after creation.
type Accommodation struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Address      string    `json:"address"`
	Photos       []string  `json:"photos"`
	Description  string    `json:"description"`
	Features     []string  `json:"features"`
	ExtraInfo    string    `json:"extra_info,omitempty"`
	CheckInTime  string    `json:"check_in_time"`
	CheckOutTime string    `json:"check_out_time"`
	MaxGuests    int       `json:"max_guests"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
