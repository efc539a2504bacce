package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange        = "orders_topic"
	NotificationsExchange = "notifications_fanout"
)

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.MessagePublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishOrderEvent(ctx context.Context, event interfaces.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return p.publish(ctx, OrdersExchange, "topic", event.RoutingKey(), amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.Timestamp,
		Body:         body,
	})
}

func (p *publisher) PublishNotification(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return p.publish(ctx, NotificationsExchange, "fanout", "", amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *publisher) publish(ctx context.Context, exchange, kind, key string, msg amqp.Publishing) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := ch.PublishWithContext(ctx, exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

type nopPublisher struct{}

// NewNopPublisher is used when RabbitMQ is disabled
func NewNopPublisher() interfaces.MessagePublisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderEvent(context.Context, interfaces.OrderEvent) error { return nil }

func (nopPublisher) PublishNotification(context.Context, domain.Notification) error { return nil }
