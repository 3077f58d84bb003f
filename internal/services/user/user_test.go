package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiking-app/user-service/internal/models"
	services "github.com/hiking-app/user-service/internal/services/user"
	"github.com/hiking-app/user-service/internal/storage/repository"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUserService_GetByID(t *testing.T) {
	testUser := &models.User{
		ID:           7,
		Email:        "test@example.com",
		PasswordHash: "secret-hash",
		Status:       models.StatusActive,
		Roles:        []string{models.DefaultRole},
	}

	t.Run("cache miss reads storage and caches", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := services.NewUserService(repo, cache, newNoopLogger())

		cache.On("Get", mock.Anything, "users:7", mock.Anything).Return(false, nil).Once()
		repo.On("FindUserByID", mock.Anything, int64(7)).Return(testUser, nil).Once()
		cache.On("Set", mock.Anything, "users:7", mock.Anything, time.Minute).Return(nil).Once()

		got, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "test@example.com", got.Email)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := services.NewUserService(repo, cache, newNoopLogger())

		cached := testUser.Sanitize()
		cache.On("Get", mock.Anything, "users:7", mock.Anything).
			Run(func(args mock.Arguments) {
				raw, err := json.Marshal(cached)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(raw, args.Get(2)))
			}).
			Return(true, nil).Once()

		got, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)

		repo.AssertNotCalled(t, "FindUserByID", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure falls back to storage", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := services.NewUserService(repo, cache, newNoopLogger())

		cache.On("Get", mock.Anything, "users:7", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("FindUserByID", mock.Anything, int64(7)).Return(testUser, nil).Once()
		cache.On("Set", mock.Anything, "users:7", mock.Anything, time.Minute).
			Return(errors.New("redis down")).Once()

		got, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := services.NewUserService(repo, nil, newNoopLogger())

		repo.On("FindUserByID", mock.Anything, int64(99)).
			Return(nil, repository.ErrUserNotFound).Once()

		_, err := svc.GetByID(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	repo := new(UserRepoMock)
	svc := services.NewUserService(repo, nil, newNoopLogger())

	users := []*models.User{
		{ID: 1, Email: "first@example.com", PasswordHash: "hash1"},
		{ID: 2, Email: "second@example.com", PasswordHash: "hash2"},
	}
	repo.On("ListUsers", mock.Anything, 50, 0).Return(users, nil).Once()

	got, err := svc.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	repo.AssertExpectations(t)
}
