package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiking-app/user-service/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("defaults are assigned by the database", func(t *testing.T) {
		email := uniqueEmail()
		created, err := storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        email,
			PasswordHash: "bcrypt-digest",
		})
		require.NoError(t, err)

		assert.Positive(t, created.ID)
		assert.Equal(t, email, created.Email)
		assert.Equal(t, "bcrypt-digest", created.PasswordHash)
		assert.Equal(t, models.StatusPendingVerification, created.Status)
		assert.Equal(t, []string{models.DefaultRole}, created.Roles)
		assert.Zero(t, created.Points)
		assert.Nil(t, created.EmailVerifiedAt)
		assert.Nil(t, created.LastLoginAt)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())
	})

	t.Run("optional fields are stored", func(t *testing.T) {
		nickname := "hiker-" + uuid.New().String()[:8]
		created, err := storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        uniqueEmail(),
			PasswordHash: "bcrypt-digest",
			Nickname:     &nickname,
			FirstName:    strPtr("Anna"),
			LastName:     strPtr("Klimova"),
		})
		require.NoError(t, err)

		require.NotNil(t, created.Nickname)
		assert.Equal(t, nickname, *created.Nickname)
		require.NotNil(t, created.FirstName)
		assert.Equal(t, "Anna", *created.FirstName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := uniqueEmail()
		_, err := storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        email,
			PasswordHash: "bcrypt-digest",
		})
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        email,
			PasswordHash: "bcrypt-digest",
		})
		require.Error(t, err)

		var uv *UniqueViolationError
		require.ErrorAs(t, err, &uv)
		assert.Contains(t, uv.Constraint, "email")
	})

	t.Run("duplicate nickname", func(t *testing.T) {
		nickname := "taken-" + uuid.New().String()[:8]
		_, err := storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        uniqueEmail(),
			PasswordHash: "bcrypt-digest",
			Nickname:     &nickname,
		})
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        uniqueEmail(),
			PasswordHash: "bcrypt-digest",
			Nickname:     &nickname,
		})
		require.Error(t, err)

		var uv *UniqueViolationError
		require.ErrorAs(t, err, &uv)
		assert.Contains(t, uv.Constraint, "nickname")
	})
}

func TestStorage_FindUser(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	email := uniqueEmail()
	created, err := storage.CreateUser(ctx, models.CreateUserEntry{
		Email:        email,
		PasswordHash: "bcrypt-digest",
	})
	require.NoError(t, err)

	t.Run("by email returns full record", func(t *testing.T) {
		found, err := storage.FindUserByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "bcrypt-digest", found.PasswordHash)
	})

	t.Run("by id returns full record", func(t *testing.T) {
		found, err := storage.FindUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, email, found.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.FindUserByEmail(ctx, "missing-"+email)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := storage.FindUserByID(ctx, created.ID+100000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	for range 5 {
		_, err := storage.CreateUser(ctx, models.CreateUserEntry{
			Email:        uniqueEmail(),
			PasswordHash: "bcrypt-digest",
		})
		require.NoError(t, err)
	}

	firstPage, err := storage.ListUsers(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 3)

	secondPage, err := storage.ListUsers(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, secondPage, 2)

	// Страницы отсортированы по id и не пересекаются.
	assert.Less(t, firstPage[2].ID, secondPage[0].ID)
}
