// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Claims расширяет стандартные claims JWT: идентификатор пользователя хранится
// в поле Subject, дополнительно переносится email. Maker определяет интерфейс
// для выпуска и проверки токенов, MakerImpl — конкретная реализация
// с использованием секретного ключа и срока жизни токена.
package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки проверки токена. ErrTokenExpired означает, что подпись корректна,
// но срок действия истёк; ErrTokenInvalid — любой другой дефект
// (повреждённая подпись, чужой ключ, некорректный subject).
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims описывает данные, хранящиеся в JWT.
type Claims struct {
	Email                string `json:"email"` // Электронная почта пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt, IssuedAt и пр.)
}

// UserID извлекает числовой идентификатор пользователя из поля Subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// Maker описывает интерфейс для выпуска и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанным id и email
	GenerateToken(userID int64, email string) (string, error)
	// ParseToken возвращает *Claims, если подпись и срок действия корректны
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
