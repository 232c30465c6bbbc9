package domain

import (
	"time"
)

// Booking is a reservation of an accommodation. RenterID is always set from
// the authenticated session; only that renter may read the booking.
type Booking struct {
	ID              string    `json:"id"`
	AccommodationID string    `json:"accommodation_id"`
	RenterID        string    `json:"renter_id"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	GuestCount      int       `json:"guest_count"`
	ContactName     string    `json:"contact_name"`
	ContactPhone    string    `json:"contact_phone"`
	PriceCents      int64     `json:"price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}
