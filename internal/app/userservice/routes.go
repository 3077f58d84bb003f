package userservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hiking-app/user-service/internal/http/handlers/auth/login"
	"github.com/hiking-app/user-service/internal/http/handlers/auth/register"
	"github.com/hiking-app/user-service/internal/http/handlers/health"
	"github.com/hiking-app/user-service/internal/http/handlers/user/list"
	"github.com/hiking-app/user-service/internal/http/handlers/user/me"
	"github.com/hiking-app/user-service/internal/http/handlers/user/read"
	"github.com/hiking-app/user-service/internal/http/middlewarectx"
	authservice "github.com/hiking-app/user-service/internal/services/auth"
	uservice "github.com/hiking-app/user-service/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, userService *uservice.UserService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService.TokenStrategy(), logger))
			r.Get("/users", list.New(logger, userService).ServeHTTP)
			r.Get("/users/me", me.New(logger).ServeHTTP)
			r.Get("/users/{id}", read.New(logger, userService).ServeHTTP)
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
