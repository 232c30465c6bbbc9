package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Buyaki01/airbnb-api/internal/auth"
	"github.com/Buyaki01/airbnb-api/internal/domain"
	apperrors "github.com/Buyaki01/airbnb-api/pkg/errors"
)

func newAuthServiceForTest(userRepo *mockUserRepository, publisher *mockEventPublisher) *AuthService {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(userRepo, hasher, jwtManager, publisher, newTestLogger())
}

func TestAuthServiceRegister(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		publisher := new(mockEventPublisher)
		svc := newAuthServiceForTest(userRepo, publisher)

		var created *domain.User
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.User)
			}).
			Return(nil)
		publisher.On("PublishUserRegistered", mock.Anything, mock.Anything).Return(nil)

		user, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Wanjiru",
			Email:    "wanjiru@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, created.ID, user.ID)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "wanjiru@example.com", user.Email)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects short password", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Wanjiru",
			Email:    "wanjiru@example.com",
			Password: "short",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("propagates duplicate email", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.AlreadyExists("user", "email", "wanjiru@example.com"))

		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Wanjiru",
			Email:    "wanjiru@example.com",
			Password: "correct horse",
		})

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})

	t.Run("succeeds even when event publish fails", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		publisher := new(mockEventPublisher)
		svc := newAuthServiceForTest(userRepo, publisher)

		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		publisher.On("PublishUserRegistered", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		user, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Wanjiru",
			Email:    "wanjiru@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	stored := &domain.User{
		ID:           "user-1",
		Name:         "Wanjiru",
		Email:        "wanjiru@example.com",
		PasswordHash: hash,
	}

	t.Run("issues verifiable token on success", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		userRepo.On("GetByEmail", mock.Anything, "wanjiru@example.com").Return(stored, nil)

		user, token, err := svc.Login(context.Background(), LoginInput{
			Email:    "wanjiru@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)

		claims, err := auth.NewJWTManager("test-secret", time.Hour).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "wanjiru@example.com", claims.Email)
	})

	t.Run("wrong password and unknown email produce the same denial", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		userRepo.On("GetByEmail", mock.Anything, "wanjiru@example.com").Return(stored, nil)
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, apperrors.NotFound("user", "nobody@example.com"))

		_, _, wrongPassword := svc.Login(context.Background(), LoginInput{
			Email:    "wanjiru@example.com",
			Password: "wrong",
		})
		_, _, unknownEmail := svc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "correct horse",
		})

		require.Error(t, wrongPassword)
		require.Error(t, unknownEmail)
		assert.ErrorIs(t, wrongPassword, apperrors.ErrUnauthorized)
		assert.ErrorIs(t, unknownEmail, apperrors.ErrUnauthorized)

		var first, second *apperrors.AppError
		require.ErrorAs(t, wrongPassword, &first)
		require.ErrorAs(t, unknownEmail, &second)
		assert.Equal(t, first.Message, second.Message)
	})

	t.Run("storage failure is a server error, not a credential denial", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		storageErr := errors.New("connection refused")
		userRepo.On("GetByEmail", mock.Anything, "wanjiru@example.com").Return(nil, storageErr)

		_, _, err := svc.Login(context.Background(), LoginInput{
			Email:    "wanjiru@example.com",
			Password: "correct horse",
		})

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.ErrorIs(t, err, storageErr)
		assert.Equal(t, 500, apperrors.HTTPStatus(err))
	})

	t.Run("rejects empty credentials before hitting the store", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		_, _, err := svc.Login(context.Background(), LoginInput{Email: "", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		_, _, err = svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: ""})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		userRepo.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuthServiceProfile(t *testing.T) {
	t.Run("returns stored user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		userRepo.On("GetByID", mock.Anything, "user-1").
			Return(&domain.User{ID: "user-1", Email: "wanjiru@example.com"}, nil)

		user, err := svc.Profile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "wanjiru@example.com", user.Email)
	})

	t.Run("propagates not found", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newAuthServiceForTest(userRepo, new(mockEventPublisher))

		userRepo.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperrors.NotFound("user", "ghost"))

		_, err := svc.Profile(context.Background(), "ghost")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
