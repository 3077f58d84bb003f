// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля, профильные поля и статусы.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Возможные статусы учётной записи пользователя.
const (
	StatusPendingVerification = "pending_verification"
	StatusActive              = "active"
	StatusSuspended           = "suspended"
	StatusDeleted             = "deleted"
)

// DefaultRole роль, которую получает каждый новый пользователь при регистрации.
const DefaultRole = "ROLE_USER"

// User представляет полную запись пользователя, включая хэш пароля.
// За пределы слоя аутентификации и хранилища в таком виде не передаётся:
// наружу уходит только SanitizedUser.
type User struct {
	ID              int64      // Числовой идентификатор, назначается хранилищем
	Email           string     // Электронная почта (уникальная, хранится в нижнем регистре)
	PasswordHash    string     // Хэш пароля пользователя
	Nickname        *string    // Никнейм (опциональный, уникальный)
	AvatarURL       *string    // Ссылка на аватар
	FirstName       *string    // Имя
	LastName        *string    // Фамилия
	Bio             *string    // Описание профиля
	PhoneNumber     *string    // Телефон (опциональный, уникальный)
	Points          int        // Счётчик баллов
	EmailVerifiedAt *time.Time // Дата подтверждения почты
	Status          string     // Статус учётной записи
	Roles           []string   // Роли пользователя, минимум DefaultRole
	LastLoginAt     *time.Time // Дата последнего входа
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SanitizedUser представление пользователя без хэша пароля.
// Единственная форма, в которой данные пользователя возвращаются наружу:
// в HTTP-ответах, контексте запроса, кэше и событиях.
type SanitizedUser struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	Nickname        *string    `json:"nickname,omitempty"`
	AvatarURL       *string    `json:"avatar_url,omitempty"`
	FirstName       *string    `json:"first_name,omitempty"`
	LastName        *string    `json:"last_name,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	Points          int        `json:"points"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	Status          string     `json:"status"`
	Roles           []string   `json:"roles"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Sanitize возвращает проекцию записи без хэша пароля.
// Вызывается на каждой границе, через которую уходит запись пользователя.
func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		AvatarURL:       u.AvatarURL,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Bio:             u.Bio,
		PhoneNumber:     u.PhoneNumber,
		Points:          u.Points,
		EmailVerifiedAt: u.EmailVerifiedAt,
		Status:          u.Status,
		Roles:           u.Roles,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// CreateUserEntry данные для создания новой записи пользователя.
// Идентификатор, статус, роли и баллы назначаются хранилищем по умолчанию.
type CreateUserEntry struct {
	Email        string
	PasswordHash string
	Nickname     *string
	AvatarURL    *string
	FirstName    *string
	LastName     *string
	Bio          *string
	PhoneNumber  *string
}

// UserRegisteredEvent событие успешной регистрации, публикуемое в очередь
// для отправки приветственного письма.
type UserRegisteredEvent struct {
	Email        string    `json:"email"`
	Nickname     *string   `json:"nickname,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
