package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/domain"
)

func claimsOf(userID string) *auth.Claims {
	return &auth.Claims{UserID: userID}
}

func TestCanMutateAccommodation(t *testing.T) {
	acc := &domain.Accommodation{ID: "acc-1", OwnerID: "user-a"}

	assert.True(t, CanMutateAccommodation(claimsOf("user-a"), acc))
	assert.False(t, CanMutateAccommodation(claimsOf("user-b"), acc))
	assert.False(t, CanMutateAccommodation(nil, acc))
	assert.False(t, CanMutateAccommodation(claimsOf("user-a"), nil))
	assert.False(t, CanMutateAccommodation(claimsOf(""), &domain.Accommodation{OwnerID: ""}))
}

func TestCanReadBooking(t *testing.T) {
	b := &domain.Booking{ID: "b-1", RenterID: "user-a"}

	assert.True(t, CanReadBooking(claimsOf("user-a"), b))
	assert.False(t, CanReadBooking(claimsOf("user-b"), b))
	assert.False(t, CanReadBooking(nil, b))
	assert.False(t, CanReadBooking(claimsOf("user-a"), nil))
}

func TestCanListOwnAccommodations(t *testing.T) {
	assert.True(t, CanListOwnAccommodations(claimsOf("user-a")))
	assert.False(t, CanListOwnAccommodations(nil))
	assert.False(t, CanListOwnAccommodations(claimsOf("")))
}
