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

// AccommodationService orchestrates listing lifecycle: create, browse, and
// owner-gated update. Every mutation runs extract → fetch → authorize →
// persist, in that order.
type AccommodationService struct {
	accRepo  repository.AccommodationRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewAccommodationService creates a new accommodation service.
func NewAccommodationService(
	accRepo repository.AccommodationRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *AccommodationService {
	return &AccommodationService{
		accRepo:  accRepo,
		producer: producer,
		logger:   logger,
	}
}

// AccommodationInput holds the full field set for creating or updating a
// listing. Ownership is never part of the input: it comes from the session.
type AccommodationInput struct {
	Title        string
	Address      string
	Photos       []string
	Description  string
	Features     []string
	ExtraInfo    string
	CheckInTime  string
	CheckOutTime string
	MaxGuests    int
	PriceCents   int64
}

func (in *AccommodationInput) validate() error {
	if in.Title == "" {
		return apperrors.InvalidInput("title is required")
	}
	if in.Address == "" {
		return apperrors.InvalidInput("address is required")
	}
	if in.MaxGuests < 1 {
		return apperrors.InvalidInput("max guests must be at least 1")
	}
	if in.PriceCents < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	return nil
}

// Create publishes a new listing owned by the authenticated caller.
func (s *AccommodationService) Create(ctx context.Context, claims *auth.Claims, input AccommodationInput) (*domain.Accommodation, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acc := &domain.Accommodation{
		ID:           uuid.New().String(),
		OwnerID:      claims.UserID,
		Title:        input.Title,
		Address:      input.Address,
		Photos:       input.Photos,
		Description:  input.Description,
		Features:     input.Features,
		ExtraInfo:    input.ExtraInfo,
		CheckInTime:  input.CheckInTime,
		CheckOutTime: input.CheckOutTime,
		MaxGuests:    input.MaxGuests,
		PriceCents:   input.PriceCents,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accRepo.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("create accommodation: %w", err)
	}

	if err := s.producer.PublishAccommodationCreated(ctx, acc); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish accommodation.created event",
			slog.String("accommodation_id", acc.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "accommodation created",
		slog.String("accommodation_id", acc.ID),
		slog.String("owner_id", acc.OwnerID),
	)

	return acc, nil
}

// Update replaces the full field set of a listing. The record is fetched
// first, then the ownership check runs, and only then is the mutation
// persisted. A listing owned by someone else is reported as not found so the
// response does not reveal that it exists.
func (s *AccommodationService) Update(ctx context.Context, claims *auth.Claims, id string, input AccommodationInput) (*domain.Accommodation, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	acc, err := s.accRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get accommodation for update: %w", err)
	}

	if !authz.CanMutateAccommodation(claims, acc) {
		s.logger.WarnContext(ctx, "accommodation update denied",
			slog.String("accommodation_id", id),
			slog.String("user_id", claims.UserID),
		)
		return nil, apperrors.NotFound("accommodation", id)
	}

	acc.Title = input.Title
	acc.Address = input.Address
	acc.Photos = input.Photos
	acc.Description = input.Description
	acc.Features = input.Features
	acc.ExtraInfo = input.ExtraInfo
	acc.CheckInTime = input.CheckInTime
	acc.CheckOutTime = input.CheckOutTime
	acc.MaxGuests = input.MaxGuests
	acc.PriceCents = input.PriceCents

	if err := s.accRepo.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("update accommodation: %w", err)
	}

	s.logger.InfoContext(ctx, "accommodation updated",
		slog.String("accommodation_id", acc.ID),
		slog.String("owner_id", acc.OwnerID),
	)

	return acc, nil
}

// Get retrieves a single listing. Listings are public, so no claim is needed.
func (s *AccommodationService) Get(ctx context.Context, id string) (*domain.Accommodation, error) {
	acc, err := s.accRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get accommodation: %w", err)
	}
	return acc, nil
}

// ListAll returns every listing for the public browse page.
func (s *AccommodationService) ListAll(ctx context.Context) ([]domain.Accommodation, error) {
	accs, err := s.accRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	return accs, nil
}

// ListOwn returns the caller's listings. The query is always scoped to the
// claims' subject; there is no unscoped variant.
func (s *AccommodationService) ListOwn(ctx context.Context, claims *auth.Claims) ([]domain.Accommodation, error) {
	if !authz.CanListOwnAccommodations(claims) {
		return nil, apperrors.Unauthorized("authentication required")
	}

	accs, err := s.accRepo.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own accommodations: %w", err)
	}
	return accs, nil
}
