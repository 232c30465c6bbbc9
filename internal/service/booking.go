package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/authz"
	"github.com/Buyaki01/airbnb-api/internal/domain"
	"github.com/Buyaki01/airbnb-api/internal/repository"
	apperrors "github.com/Buyaki01/airbnb-api/pkg/errors"
)

// BookingService orchestrates reservation creation and renter-scoped reads.
type BookingService struct {
	bookingRepo repository.BookingRepository
	accRepo     repository.AccommodationRepository
	producer    EventPublisher
	logger      *slog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	accRepo repository.AccommodationRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		accRepo:     accRepo,
		producer:    producer,
		logger:      logger,
	}
}

// BookingInput holds the parameters for creating a reservation. The renter
// identity is never part of the input.
type BookingInput struct {
	AccommodationID string
	CheckIn         time.Time
	CheckOut        time.Time
	GuestCount      int
	ContactName     string
	ContactPhone    string
	PriceCents      int64
}

func (in *BookingInput) validate() error {
	if in.AccommodationID == "" {
		return apperrors.InvalidInput("accommodation id is required")
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return apperrors.InvalidInput("check-in and check-out dates are required")
	}
	if !in.CheckOut.After(in.CheckIn) {
		return apperrors.InvalidInput("check-out must be after check-in")
	}
	if in.GuestCount < 1 {
		return apperrors.InvalidInput("guest count must be at least 1")
	}
	if in.ContactName == "" {
		return apperrors.InvalidInput("contact name is required")
	}
	if in.ContactPhone == "" {
		return apperrors.InvalidInput("contact phone is required")
	}
	return nil
}

// Create reserves a stay for the authenticated caller. The referenced
// accommodation must exist; the renter is taken from the session.
func (s *BookingService) Create(ctx context.Context, claims *auth.Claims, input BookingInput) (*domain.Booking, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.accRepo.GetByID(ctx, input.AccommodationID); err != nil {
		return nil, fmt.Errorf("get accommodation for booking: %w", err)
	}

	booking := &domain.Booking{
		ID:              uuid.New().String(),
		AccommodationID: input.AccommodationID,
		RenterID:        claims.UserID,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		GuestCount:      input.GuestCount,
		ContactName:     input.ContactName,
		ContactPhone:    input.ContactPhone,
		PriceCents:      input.PriceCents,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.producer.PublishBookingCreated(ctx, booking); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking.created event",
			slog.String("booking_id", booking.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", booking.ID),
		slog.String("accommodation_id", booking.AccommodationID),
		slog.String("renter_id", booking.RenterID),
	)

	return booking, nil
}

// Get retrieves a booking for its renter. The lookup is scoped to the
// claims' subject, so someone else's booking is simply not found.
func (s *BookingService) Get(ctx context.Context, claims *auth.Claims, id string) (*domain.Booking, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	booking, err := s.bookingRepo.GetByIDForRenter(ctx, id, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if !authz.CanReadBooking(claims, booking) {
		return nil, apperrors.NotFound("booking", id)
	}
	return booking, nil
}

// ListOwn returns the caller's bookings.
func (s *BookingService) ListOwn(ctx context.Context, claims *auth.Claims) ([]domain.Booking, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	bookings, err := s.bookingRepo.ListByRenter(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
