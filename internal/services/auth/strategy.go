package services

import (
	"context"
	"errors"

	"github.com/hiking-app/user-service/internal/models"
)

// ErrInvalidCredentials единый результат любой неудачной проверки пары
// email+пароль; причина (неизвестный email или неверный пароль) не раскрывается.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials объединяет данные обоих способов аутентификации:
// пара email+пароль либо bearer-токен.
type Credentials struct {
	Email    string
	Password string
	Token    string
}

// Strategy единый контракт способов аутентификации. Вариант выбирается
// вызывающей стороной явно: обработчик логина берет парольную стратегию,
// middleware защищённых маршрутов — токенную.
type Strategy interface {
	Authenticate(ctx context.Context, creds Credentials) (*models.SanitizedUser, error)
}

// PasswordStrategy аутентификация по паре email+пароль.
type PasswordStrategy struct {
	auth *AuthService
}

// Authenticate проверяет учетные данные; любое несовпадение возвращает
// ErrInvalidCredentials.
func (p *PasswordStrategy) Authenticate(ctx context.Context, creds Credentials) (*models.SanitizedUser, error) {
	user, err := p.auth.ValidateCredentials(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// TokenStrategy аутентификация по bearer-токену с восстановлением живой записи.
type TokenStrategy struct {
	auth *AuthService
}

// Authenticate проверяет токен и возвращает запись его владельца.
func (t *TokenStrategy) Authenticate(ctx context.Context, creds Credentials) (*models.SanitizedUser, error) {
	return t.auth.ResolveToken(ctx, creds.Token)
}

// PasswordStrategy возвращает парольную стратегию сервиса.
func (s *AuthService) PasswordStrategy() Strategy {
	return &PasswordStrategy{auth: s}
}

// TokenStrategy возвращает токенную стратегию сервиса.
func (s *AuthService) TokenStrategy() Strategy {
	return &TokenStrategy{auth: s}
}
