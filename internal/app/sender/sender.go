// Package sender собирает приложение отправки приветственных писем:
// подключение к брокеру, SMTP транспорт и потребителя очереди регистраций.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/hiking-app/user-service/internal/config"
	libsmtp "github.com/hiking-app/user-service/internal/lib/smtp"
	"github.com/hiking-app/user-service/internal/rabbitmq"
	senderservice "github.com/hiking-app/user-service/internal/services/sender"
)

// App объединяет зависимости приложения-отправителя.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New инициализирует подключение к брокеру и SMTP транспорт.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := libsmtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди регистраций и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.RegisteredQueue, a.senderService.SendWelcomeEmail)
	if err != nil {
		a.logger.Error("failed to start registered queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
