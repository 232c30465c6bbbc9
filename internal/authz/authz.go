// Package authz holds the ownership predicates. They are pure functions over
// the verified claims and a fetched record; denial is a false return, never
// an error. Identifiers are compared as canonical strings.
package authz

import (
	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/domain"
)

// CanMutateAccommodation reports whether the claims' subject owns the
// accommodation.
func CanMutateAccommodation(claims *auth.Claims, acc *domain.Accommodation) bool {
	if claims == nil || acc == nil {
		return false
	}
	return claims.UserID != "" && claims.UserID == acc.OwnerID
}

// CanReadBooking reports whether the claims' subject is the booking's renter.
func CanReadBooking(claims *auth.Claims, b *domain.Booking) bool {
	if claims == nil || b == nil {
		return false
	}
	return claims.UserID != "" && claims.UserID == b.RenterID
}

// CanListOwnAccommodations reports whether a "my listings" query may run.
// The query itself is always scoped server-side to the claims' subject.
func CanListOwnAccommodations(claims *auth.Claims) bool {
	return claims != nil && claims.UserID != ""
}
