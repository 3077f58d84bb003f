// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hiking-app/user-service/internal/lib/jwt"
	"github.com/hiking-app/user-service/internal/lib/password"
	"github.com/hiking-app/user-service/internal/lib/sl"
	"github.com/hiking-app/user-service/internal/models"
	"github.com/hiking-app/user-service/internal/storage/repository"
)

// Ошибки регистрации и восстановления личности по токену.
var (
	// ErrEmailTaken email занят — обнаружено предварительной проверкой.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDuplicateField уникальное ограничение нарушено уже на вставке:
	// проигранная гонка за email либо занятый nickname/телефон.
	ErrDuplicateField = errors.New("duplicate field value")
	// ErrPersistence непрозрачная ошибка хранилища; детали остаются в логе.
	ErrPersistence = errors.New("persistence failure")
	// ErrUserNotResolved токен корректен, но его subject больше не существует.
	ErrUserNotResolved = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, entry models.CreateUserEntry) (*models.User, error)

	// FindUserByEmail возвращает полную запись (с хэшем) или ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID возвращает полную запись (с хэшем) или ErrUserNotFound.
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// EventPublisher публикует доменные события. Публикация не входит в контракт
// регистрации: её ошибки логируются и не влияют на результат.
type EventPublisher interface {
	PublishUserRegistered(event models.UserRegisteredEvent) error
}

// RegisterEntry входные данные регистрации. Формат полей (границы длины,
// синтаксис email) проверяется HTTP-слоем до вызова сервиса.
type RegisterEntry struct {
	Email     string
	Password  string
	Nickname  *string
	FirstName *string
	LastName  *string
}

// AuthService отвечает за регистрацию, проверку учетных данных,
// выпуск JWT и восстановление личности по токену.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	publisher EventPublisher
	log       *slog.Logger

	// Хэш несуществующего пароля: сравнение с ним при промахе по email
	// выравнивает время ответа с веткой "неверный пароль".
	dummyHash string
}

// NewAuthService создает новый экземпляр AuthService. publisher может быть nil.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, publisher EventPublisher, log *slog.Logger) *AuthService {
	dummyHash, err := password.Hash("unreachable-baseline-password")
	if err != nil {
		dummyHash = ""
	}
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		publisher: publisher,
		log:       log,
		dummyHash: dummyHash,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает нового пользователя: проверяет занятость email, хэширует
// пароль и отдает запись хранилищу. Возвращает запись без хэша пароля.
//
// Предварительная проверка email дает ErrEmailTaken; проигранная гонка или
// конфликт nickname ловятся по ограничению базы и дают ErrDuplicateField.
// Прочие ошибки хранилища схлопываются в ErrPersistence, подробности
// остаются только в серверном логе.
func (s *AuthService) Register(ctx context.Context, entry RegisterEntry) (*models.SanitizedUser, error) {
	const op = "auth.Register"

	email := normalizeEmail(entry.Email)

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		s.log.Error("email lookup failed", slog.String("op", op), sl.Err(err))
		return nil, ErrPersistence
	}

	hashed, err := password.Hash(entry.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.CreateUser(ctx, models.CreateUserEntry{
		Email:        email,
		PasswordHash: hashed,
		Nickname:     entry.Nickname,
		FirstName:    entry.FirstName,
		LastName:     entry.LastName,
	})
	if err != nil {
		var uv *repository.UniqueViolationError
		if errors.As(err, &uv) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, uv.Constraint)
		}
		s.log.Error("failed to create user", slog.String("op", op), sl.Err(err))
		return nil, ErrPersistence
	}

	if s.publisher != nil {
		event := models.UserRegisteredEvent{
			Email:        created.Email,
			Nickname:     created.Nickname,
			RegisteredAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishUserRegistered(event); err != nil {
			s.log.Error("failed to publish user.registered event", slog.String("op", op), sl.Err(err))
		}
	}

	return created.Sanitize(), nil
}

// ValidateCredentials ищет пользователя по email и сверяет пароль с хэшем.
//
// Любое несовпадение — неизвестный email, пустой хэш, неверный пароль —
// возвращается как (nil, nil): вызывающая сторона не может отличить причины.
// При промахе по email выполняется сравнение с dummy-хэшем, чтобы время
// ответа не выдавало существование учетной записи.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, rawPassword string) (*models.SanitizedUser, error) {
	const op = "auth.ValidateCredentials"

	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			password.Verify(s.dummyHash, rawPassword)
			return nil, nil
		}
		s.log.Error("email lookup failed", slog.String("op", op), sl.Err(err))
		return nil, ErrPersistence
	}
	if user.PasswordHash == "" || !password.Verify(user.PasswordHash, rawPassword) {
		return nil, nil
	}
	return user.Sanitize(), nil
}

// Login аутентифицирует пользователя через парольную стратегию
// и выпускает access token.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.PasswordStrategy().Authenticate(ctx, Credentials{Email: email, Password: rawPassword})
	if err != nil {
		return "", err
	}
	return s.IssueToken(user)
}

// IssueToken выпускает подписанный токен для аутентифицированного пользователя.
func (s *AuthService) IssueToken(user *models.SanitizedUser) (string, error) {
	const op = "auth.IssueToken"
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ResolveToken проверяет токен и восстанавливает по его subject живую запись
// пользователя. Ошибки проверки токена (jwt.ErrTokenExpired, jwt.ErrTokenInvalid)
// пробрасываются как есть; исчезнувший пользователь дает ErrUserNotResolved.
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*models.SanitizedUser, error) {
	const op = "auth.ResolveToken"

	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, jwt.ErrTokenInvalid
	}

	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotResolved
		}
		s.log.Error("user lookup failed", slog.String("op", op), sl.Err(err))
		return nil, ErrPersistence
	}
	return user.Sanitize(), nil
}
