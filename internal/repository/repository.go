package repository

import (
	"context"

	"github.com/Buyaki01/airbnb-api/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccommodationRepository defines the interface for listing persistence.
type AccommodationRepository interface {
	// Create inserts a new accommodation into the store.
	Create(ctx context.Context, acc *domain.Accommodation) error

	// GetByID retrieves an accommodation by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Accommodation, error)

	// Update replaces the mutable fields of an existing accommodation.
	// OwnerID is never updated.
	Update(ctx context.Context, acc *domain.Accommodation) error

	// ListByOwner returns all accommodations owned by the given user.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Accommodation, error)

	// ListAll returns every accommodation, for the public browse endpoint.
	ListAll(ctx context.Context) ([]domain.Accommodation, error)
}

// BookingRepository defines the interface for booking persistence.
type BookingRepository interface {
	// Create inserts a new booking into the store.
	Create(ctx context.Context, b *domain.Booking) error

	// GetByIDForRenter retrieves a booking only if it belongs to the given
	// renter. A booking owned by someone else is reported as not found.
	GetByIDForRenter(ctx context.Context, id, renterID string) (*domain.Booking, error)

	// ListByRenter returns all bookings made by the given renter.
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
}
