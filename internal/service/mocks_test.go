package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/domain"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockAccommodationRepository struct {
	mock.Mock
}

func (m *mockAccommodationRepository) Create(ctx context.Context, acc *domain.Accommodation) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockAccommodationRepository) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepository) Update(ctx context.Context, acc *domain.Accommodation) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockAccommodationRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Accommodation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepository) ListAll(ctx context.Context) ([]domain.Accommodation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accommodation), args.Error(1)
}

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepository) GetByIDForRenter(ctx context.Context, id, renterID string) (*domain.Booking, error) {
	args := m.Called(ctx, id, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishAccommodationCreated(ctx context.Context, acc *domain.Accommodation) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishBookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClaims(userID string) *auth.Claims {
	return &auth.Claims{UserID: userID, Email: userID + "@example.com"}
}

func futureStay() (time.Time, time.Time) {
	checkIn := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return checkIn, checkIn.Add(72 * time.Hour)
}
