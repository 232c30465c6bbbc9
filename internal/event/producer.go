package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Buyaki01/airbnb-api/internal/domain"
	pkgkafka "github.com/Buyaki01/airbnb-api/pkg/kafka"
)

// Kafka topics for domain events.
const (
	TopicUserRegistered       = "airbnb.user.registered"
	TopicAccommodationCreated = "airbnb.accommodation.created"
	TopicBookingCreated       = "airbnb.booking.created"
)

// Source identifier for events originating from this service.
const source = "airbnb-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccommodationCreatedData is the payload for an accommodation.created event.
type AccommodationCreatedData struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

// BookingCreatedData is the payload for a booking.created event.
type BookingCreatedData struct {
	ID              string    `json:"id"`
	AccommodationID string    `json:"accommodation_id"`
	RenterID        string    `json:"renter_id"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, "user", source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	return nil
}

// PublishAccommodationCreated publishes an accommodation.created event.
func (p *Producer) PublishAccommodationCreated(ctx context.Context, acc *domain.Accommodation) error {
	data := AccommodationCreatedData{
		ID:      acc.ID,
		OwnerID: acc.OwnerID,
		Title:   acc.Title,
	}

	event, err := pkgkafka.NewEvent(TopicAccommodationCreated, acc.ID, "accommodation", source, data)
	if err != nil {
		return fmt.Errorf("create accommodation.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAccommodationCreated, event); err != nil {
		return fmt.Errorf("publish accommodation.created event: %w", err)
	}

	return nil
}

// PublishBookingCreated publishes a booking.created event.
func (p *Producer) PublishBookingCreated(ctx context.Context, b *domain.Booking) error {
	data := BookingCreatedData{
		ID:              b.ID,
		AccommodationID: b.AccommodationID,
		RenterID:        b.RenterID,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
	}

	event, err := pkgkafka.NewEvent(TopicBookingCreated, b.ID, "booking", source, data)
	if err != nil {
		return fmt.Errorf("create booking.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookingCreated, event); err != nil {
		return fmt.Errorf("publish booking.created event: %w", err)
	}

	return nil
}
