// Package userservice собирает HTTP-приложение сервиса пользователей:
// хранилище, миграции, кэш, брокер событий, сервисы и маршруты.
package userservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/hiking-app/user-service/internal/cache"
	"github.com/hiking-app/user-service/internal/config"
	"github.com/hiking-app/user-service/internal/lib/jwt"
	"github.com/hiking-app/user-service/internal/lib/sl"
	"github.com/hiking-app/user-service/internal/migrations"
	"github.com/hiking-app/user-service/internal/rabbitmq"
	authservice "github.com/hiking-app/user-service/internal/services/auth"
	uservice "github.com/hiking-app/user-service/internal/services/user"
	"github.com/hiking-app/user-service/internal/storage/repository"
)

// App объединяет зависимости HTTP-приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New инициализирует все зависимости приложения и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(cfg.StorageConnectionString, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Error("redis unavailable, running without cache", sl.Err(err))
		cacheRedis = nil
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, publisher, logger)
	userService := uservice.NewUserService(db, cacheOrNil(cacheRedis), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// cacheOrNil возвращает типизированный nil-интерфейс при отсутствии redis,
// чтобы проверка cache != nil внутри сервиса работала корректно.
func cacheOrNil(c *cache.Cache) uservice.Cache {
	if c == nil {
		return nil
	}
	return c
}

// Run запускает HTTP-сервер и блокируется до отмены контекста либо ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitCh.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		a.db.Close()
		return err
	}
}
