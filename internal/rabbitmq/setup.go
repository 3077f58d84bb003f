package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// UsersExchange — exchange событий жизненного цикла пользователей.
	UsersExchange = "users"
	// RegisteredQueue — очередь событий о новых регистрациях.
	RegisteredQueue = "users.registered"
	// RegisteredRoutingKey — ключ маршрутизации события регистрации.
	RegisteredRoutingKey = "user.registered"
)

// SetupChannel открывает канал и объявляет топологию событий пользователей:
// durable direct exchange, очередь регистраций и ее привязку.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		UsersExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		RegisteredQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, RegisteredQueue, err)
	}

	err = ch.QueueBind(RegisteredQueue, RegisteredRoutingKey, UsersExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, RegisteredQueue, err)
	}

	return ch, nil
}
