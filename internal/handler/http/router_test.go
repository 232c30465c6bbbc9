package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/domain"
	"github.com/Buyaki01/airbnb-api/internal/service"
	"github.com/Buyaki01/airbnb-api/internal/session"
	apperrors "github.com/Buyaki01/airbnb-api/pkg/errors"
	"github.com/Buyaki01/airbnb-api/pkg/health"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockAccRepo struct {
	mock.Mock
}

func (m *mockAccRepo) Create(ctx context.Context, acc *domain.Accommodation) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockAccRepo) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accommodation), args.Error(1)
}

func (m *mockAccRepo) Update(ctx context.Context, acc *domain.Accommodation) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockAccRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Accommodation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accommodation), args.Error(1)
}

func (m *mockAccRepo) ListAll(ctx context.Context) ([]domain.Accommodation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accommodation), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByIDForRenter(ctx context.Context, id, renterID string) (*domain.Booking, error) {
	args := m.Called(ctx, id, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type nopPublisher struct{}

func (nopPublisher) PublishUserRegistered(context.Context, *domain.User) error         { return nil }
func (nopPublisher) PublishAccommodationCreated(context.Context, *domain.Accommodation) error {
	return nil
}
func (nopPublisher) PublishBookingCreated(context.Context, *domain.Booking) error { return nil }

type testEnv struct {
	router      http.Handler
	userRepo    *mockUserRepo
	accRepo     *mockAccRepo
	bookingRepo *mockBookingRepo
	jwt         *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	userRepo := new(mockUserRepo)
	accRepo := new(mockAccRepo)
	bookingRepo := new(mockBookingRepo)
	publisher := nopPublisher{}

	router := NewRouter(RouterConfig{
		AuthService:          service.NewAuthService(userRepo, hasher, jwtManager, publisher, logger),
		AccommodationService: service.NewAccommodationService(accRepo, publisher, logger),
		BookingService:       service.NewBookingService(bookingRepo, accRepo, publisher, logger),
		Verifier:             jwtManager,
		CookieTTL:            time.Hour,
		HealthHandler:        health.NewHandler(),
		Logger:               logger,
		CORS:                 CORSConfig{Environment: "development"},
	})

	return &testEnv{
		router:      router,
		userRepo:    userRepo,
		accRepo:     accRepo,
		bookingRepo: bookingRepo,
		jwt:         jwtManager,
	}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := env.jwt.Issue(userID, userID+"@example.com")
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sampleListing(id, ownerID string) *domain.Accommodation {
	return &domain.Accommodation{
		ID:         id,
		OwnerID:    ownerID,
		Title:      "Kilimani Studio",
		Address:    "8 Argwings Kodhek Rd, Nairobi",
		MaxGuests:  2,
		PriceCents: 480000,
	}
}

func listingBody() map[string]any {
	return map[string]any{
		"title":       "Kilimani Studio",
		"address":     "8 Argwings Kodhek Rd, Nairobi",
		"max_guests":  2,
		"price_cents": 480000,
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"name":     "Wanjiru",
			"email":    "wanjiru@example.com",
			"password": "correct horse",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]any)
		assert.Equal(t, "wanjiru@example.com", data["email"])
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"name":     "Wanjiru",
			"email":    "not-an-email",
			"password": "correct horse",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("requires json content type", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("name=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, _ := hasher.Hash("correct horse")
	stored := &domain.User{ID: "user-1", Email: "wanjiru@example.com", PasswordHash: hash}

	t.Run("sets session cookie on success", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetByEmail", mock.Anything, "wanjiru@example.com").Return(stored, nil)

		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "wanjiru@example.com",
			"password": "correct horse",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var sessionCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == session.CookieName {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.NotEmpty(t, sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
		assert.True(t, sessionCookie.Secure)
		assert.Equal(t, http.SameSiteNoneMode, sessionCookie.SameSite)

		claims, err := env.jwt.Verify(sessionCookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("wrong password and unknown email get the same message", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetByEmail", mock.Anything, "wanjiru@example.com").Return(stored, nil)
		env.userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, apperrors.NotFound("user", "nobody@example.com"))

		wrongPassword := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "wanjiru@example.com",
			"password": "wrong password",
		})
		unknownEmail := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "correct horse",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestProfileEndpoint(t *testing.T) {
	t.Run("returns the caller's account", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetByID", mock.Anything, "user-1").
			Return(&domain.User{ID: "user-1", Name: "Wanjiru", Email: "wanjiru@example.com"}, nil)

		rec := env.do(t, http.MethodGet, "/api/v1/auth/profile", env.tokenFor(t, "user-1"), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]any)
		assert.Equal(t, "user-1", data["id"])
	})

	t.Run("accepts the cookie channel", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetByID", mock.Anything, "user-1").
			Return(&domain.User{ID: "user-1", Email: "wanjiru@example.com"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: env.tokenFor(t, "user-1")})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/auth/profile", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "authentication required")
	})

	t.Run("garbage token gets a distinct 401", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/auth/profile", "not-a-token", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid or expired token")
	})
}

func TestAccommodationEndpoints(t *testing.T) {
	t.Run("browse is public", func(t *testing.T) {
		env := newTestEnv(t)
		env.accRepo.On("ListAll", mock.Anything).
			Return([]domain.Accommodation{*sampleListing("acc-1", "owner-1")}, nil)

		rec := env.do(t, http.MethodGet, "/api/v1/accommodations/", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("broken token is rejected even on public browse", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/accommodations/", "garbage", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env.accRepo.AssertNotCalled(t, "ListAll")
	})

	t.Run("create forces owner from the session", func(t *testing.T) {
		env := newTestEnv(t)

		var created *domain.Accommodation
		env.accRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Accommodation)
			}).
			Return(nil)

		body := listingBody()
		body["owner_id"] = "somebody-else"

		rec := env.do(t, http.MethodPost, "/api/v1/accommodations/", env.tokenFor(t, "owner-1"), body)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.Equal(t, "owner-1", created.OwnerID)
	})

	t.Run("create requires a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/accommodations/", "", listingBody())

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env.accRepo.AssertNotCalled(t, "Create")
	})

	t.Run("cross-owner update reads as not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.accRepo.On("GetByID", mock.Anything, "acc-1").
			Return(sampleListing("acc-1", "owner-1"), nil)

		rec := env.do(t, http.MethodPut, "/api/v1/accommodations/acc-1", env.tokenFor(t, "intruder"), listingBody())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env.accRepo.AssertNotCalled(t, "Update")
	})

	t.Run("mine is scoped to the caller", func(t *testing.T) {
		env := newTestEnv(t)
		env.accRepo.On("ListByOwner", mock.Anything, "owner-1").
			Return([]domain.Accommodation{*sampleListing("acc-1", "owner-1")}, nil)

		rec := env.do(t, http.MethodGet, "/api/v1/accommodations/mine", env.tokenFor(t, "owner-1"), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		env.accRepo.AssertCalled(t, "ListByOwner", mock.Anything, "owner-1")
	})

	t.Run("mine requires a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/accommodations/mine", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookingEndpoints(t *testing.T) {
	bookingBody := func() map[string]any {
		checkIn := time.Now().Add(48 * time.Hour).UTC()
		return map[string]any{
			"accommodation_id": "acc-1",
			"check_in":         checkIn.Format(time.RFC3339),
			"check_out":        checkIn.Add(72 * time.Hour).Format(time.RFC3339),
			"guest_count":      2,
			"contact_name":     "Wanjiru",
			"contact_phone":    "+254700000000",
			"price_cents":      1440000,
		}
	}

	t.Run("create forces renter from the session", func(t *testing.T) {
		env := newTestEnv(t)
		env.accRepo.On("GetByID", mock.Anything, "acc-1").
			Return(sampleListing("acc-1", "owner-1"), nil)

		var created *domain.Booking
		env.bookingRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Booking)
			}).
			Return(nil)

		rec := env.do(t, http.MethodPost, "/api/v1/bookings/", env.tokenFor(t, "renter-1"), bookingBody())

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.Equal(t, "renter-1", created.RenterID)
	})

	t.Run("someone else's booking reads as not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.bookingRepo.On("GetByIDForRenter", mock.Anything, "booking-1", "intruder").
			Return(nil, apperrors.NotFound("booking", "booking-1"))

		rec := env.do(t, http.MethodGet, "/api/v1/bookings/booking-1", env.tokenFor(t, "intruder"), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list requires a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/bookings/", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	live := env.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, live.Code)

	ready := env.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, ready.Code)
}
