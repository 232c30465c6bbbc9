package service

import (
	"context"

	"github.com/Buyaki01/airbnb-api/internal/domain"
)

// EventPublisher emits domain events after successful mutations. Publish
// failures are logged and never fail the request that triggered them.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishAccommodationCreated(ctx context.Context, acc *domain.Accommodation) error
	PublishBookingCreated(ctx context.Context, b *domain.Booking) error
}
