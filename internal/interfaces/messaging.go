package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/storefront/internal/domain"
)

type OrderEventType string

const (
	OrderCreated OrderEventType = "created"
	OrderUpdated OrderEventType = "updated"
	OrderDeleted OrderEventType = "deleted"
)

// Сообщения RabbitMQ
type OrderEvent struct {
	Type      OrderEventType      `json:"type"`
	OrderID   string              `json:"order_id"`
	Order     *domain.Order       `json:"order,omitempty"`
	Update    *domain.OrderUpdate `json:"update,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

func (e OrderEvent) RoutingKey() string {
	return "orders." + string(e.Type)
}

type MessagePublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	PublishNotification(ctx context.Context, n domain.Notification) error
}

type MessageConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type (
	OrderEventHandler   func(ctx context.Context, body []byte) error
	NotificationHandler func(ctx context.Context, body []byte) error
)
