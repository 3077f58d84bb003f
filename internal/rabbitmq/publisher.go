package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"

	librabbitmq "github.com/hiking-app/user-service/internal/lib/rabbitmq"
	"github.com/hiking-app/user-service/internal/models"
)

// Publisher публикует события жизненного цикла пользователей.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает новый экземпляр Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishUserRegistered публикует событие о новой регистрации.
func (p *Publisher) PublishUserRegistered(event models.UserRegisteredEvent) error {
	const op = "rabbitmq.PublishUserRegistered"

	if err := librabbitmq.PublishMessage(p.ch, UsersExchange, RegisteredRoutingKey, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
