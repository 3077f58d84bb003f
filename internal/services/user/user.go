// Package services содержит логику бизнес-уровня для чтения записей пользователей.
//
// UserService возвращает только очищенные записи (без хэша пароля);
// чтение по идентификатору проходит через короткоживущий кэш в redis.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hiking-app/user-service/internal/lib/sl"
	"github.com/hiking-app/user-service/internal/models"
	"github.com/hiking-app/user-service/internal/storage/repository"
)

// ErrUserNotFound запись пользователя отсутствует.
var ErrUserNotFound = errors.New("user not found")

// Срок жизни кэшированной записи пользователя.
const userCacheTTL = time.Minute

// UserRepository описывает контракт чтения пользователей из базы данных.
type UserRepository interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// Cache описывает контракт кэша очищенных записей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// UserService отдает очищенные записи пользователей.
type UserService struct {
	users UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService. cache может быть nil.
func NewUserService(users UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		users: users,
		cache: cache,
		log:   log,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("users:%d", id)
}

// GetByID возвращает очищенную запись пользователя по идентификатору.
// Сначала проверяется кэш; промахи читаются из базы и кэшируются.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.SanitizedUser, error) {
	const op = "user.GetByID"

	if s.cache != nil {
		var cached models.SanitizedUser
		found, err := s.cache.Get(ctx, userCacheKey(id), &cached)
		if err != nil {
			s.log.Error("cache lookup failed", slog.String("op", op), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sanitized := user.Sanitize()

	if s.cache != nil {
		if err := s.cache.Set(ctx, userCacheKey(id), sanitized, userCacheTTL); err != nil {
			s.log.Error("cache set failed", slog.String("op", op), sl.Err(err))
		}
	}
	return sanitized, nil
}

// GetByEmail возвращает очищенную запись пользователя по email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.SanitizedUser, error) {
	const op = "user.GetByEmail"

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.Sanitize(), nil
}

// List возвращает страницу очищенных записей пользователей.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.SanitizedUser, error) {
	const op = "user.List"

	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.SanitizedUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Sanitize())
	}
	return result, nil
}
