package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderEventsQueue   = "storefront_order_events"
	OrderEventsPattern = "orders.#"

	reconnectDelay = 5 * time.Second
)

type consumer struct {
	conn     Connection
	prefetch int
	logger   logger.Logger
}

func NewConsumer(conn Connection, prefetch int, logger logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, prefetch: prefetch, logger: logger}
}

func (c *consumer) ConsumeOrderEvents(ctx context.Context, handler interfaces.OrderEventHandler) error {
	return c.withReconnect(ctx, "order_events", func() error {
		return c.consumeOrderEvents(ctx, handler)
	})
}

func (c *consumer) ConsumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	return c.withReconnect(ctx, "notifications", func() error {
		return c.consumeNotifications(ctx, handler)
	})
}

func (c *consumer) withReconnect(ctx context.Context, name string, session func() error) error {
	for {
		err := session()

		// Если контекст отменен - выходим
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Warn("consumer_disconnected", fmt.Sprintf("%s consumer disconnected, reconnecting in %s", name, reconnectDelay), "", map[string]interface{}{
			"consumer": name,
			"error":    err.Error(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *consumer) consumeOrderEvents(ctx context.Context, handler interfaces.OrderEventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare orders exchange: %w", err)
	}

	q, err := ch.QueueDeclare(OrderEventsQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, OrderEventsPattern, OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	return c.drain(ctx, closeChan, msgs, func(msg amqp.Delivery) {
		if err := handler(ctx, msg.Body); err != nil {
			// битые сообщения не возвращаем в очередь
			msg.Nack(false, false)
			return
		}
		msg.Ack(false)
	})
}

func (c *consumer) consumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Временная эксклюзивная очередь
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", NotificationsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	return c.drain(ctx, closeChan, msgs, func(msg amqp.Delivery) {
		// Игнорируем ошибки обработки уведомлений
		_ = handler(ctx, msg.Body)
	})
}

func (c *consumer) drain(ctx context.Context, closeChan <-chan *amqp.Error, msgs <-chan amqp.Delivery, handle func(amqp.Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return errors.New("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return errors.New("messages channel closed")
			}
			handle(msg)
		}
	}
}
