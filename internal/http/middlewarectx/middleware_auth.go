// Package middlewarectx содержит middleware аутентификации и ключи контекста,
// через которые обработчики получают личность аутентифицированного пользователя.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hiking-app/user-service/internal/http/response"
	"github.com/hiking-app/user-service/internal/lib/jwt"
	"github.com/hiking-app/user-service/internal/lib/sl"
	"github.com/hiking-app/user-service/internal/models"
	services "github.com/hiking-app/user-service/internal/services/auth"
)

type contextKey string

// Key — ключ контекста, под которым хранится очищенная запись
// аутентифицированного пользователя.
const Key contextKey = "user"

// Identity возвращает запись аутентифицированного пользователя из контекста.
func Identity(ctx context.Context) (*models.SanitizedUser, bool) {
	user, ok := ctx.Value(Key).(*models.SanitizedUser)
	return user, ok
}

// JWTMiddleware проверяет bearer-токен из заголовка Authorization и кладет
// запись владельца в контекст запроса. Любая неудача дает 401; текст ответа
// различает истекшую сессию, исчезнувшего пользователя и все остальное.
func JWTMiddleware(strategy services.Strategy, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or malformed authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := strategy.Authenticate(r.Context(), services.Credentials{Token: token})
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					log.Error("token expired", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("session expired, please log in again"))
				case errors.Is(err, services.ErrUserNotResolved):
					log.Error("token subject no longer exists", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("user not found"))
				default:
					log.Error("token rejected", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("unauthorized"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), Key, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
