package order

import (
	"context"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type Service struct {
	store     interfaces.StateStore
	repo      interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	now       func() time.Time
}

var _ interfaces.OrderService = (*Service)(nil)

func NewService(store interfaces.StateStore, repo interfaces.OrderRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		store:     store,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) CreateOrder(ctx context.Context, data domain.CreateOrderData) (domain.Order, error) {
	s.store.Dispatch(state.CreateOrderStarted{})

	// 1. Сохранение в удаленное хранилище
	order, err := s.repo.Create(ctx, domain.NewOrderRecord(data, s.now()))
	if err != nil {
		s.store.Dispatch(state.CreateOrderFailed{Err: err.Error()})
		return domain.Order{}, err
	}
	s.store.Dispatch(state.CreateOrderSucceeded{Order: order})
	s.logger.Debug("order_created", "Order stored", "", map[string]interface{}{"order_id": order.ID})

	// 2. Публикация события
	s.publish(ctx, interfaces.OrderEvent{
		Type:    interfaces.OrderCreated,
		OrderID: order.ID,
		Order:   &order,
	})

	return order, nil
}

func (s *Service) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	s.store.Dispatch(state.FetchOrdersStarted{})

	orders, err := s.repo.List(ctx)
	if err != nil {
		s.store.Dispatch(state.FetchOrdersFailed{Err: err.Error()})
		return nil, err
	}

	s.store.Dispatch(state.FetchOrdersSucceeded{Orders: orders})
	return orders, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id string, update domain.OrderUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	s.store.Dispatch(state.UpdateOrderStarted{ID: id})

	if err := s.repo.Update(ctx, id, update); err != nil {
		s.store.Dispatch(state.UpdateOrderFailed{ID: id, Err: err.Error()})
		return err
	}

	s.store.Dispatch(state.UpdateOrderSucceeded{ID: id, Update: update})
	s.publish(ctx, interfaces.OrderEvent{
		Type:    interfaces.OrderUpdated,
		OrderID: id,
		Update:  &update,
	})
	return nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	s.store.Dispatch(state.DeleteOrderStarted{ID: id})

	if err := s.repo.Delete(ctx, id); err != nil {
		s.store.Dispatch(state.DeleteOrderFailed{ID: id, Err: err.Error()})
		return err
	}

	s.store.Dispatch(state.DeleteOrderSucceeded{ID: id})
	s.publish(ctx, interfaces.OrderEvent{
		Type:    interfaces.OrderDeleted,
		OrderID: id,
	})
	return nil
}

func (s *Service) ClearError() {
	s.store.Dispatch(state.ClearOrdersError{})
}

func (s *Service) ClearOrders() {
	s.store.Dispatch(state.ClearOrders{})
}

// publish never fails the intent; the order is already stored
func (s *Service) publish(ctx context.Context, event interfaces.OrderEvent) {
	event.Timestamp = s.now().UTC()

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_id": event.OrderID,
			"type":     event.Type,
		}, err)
		return
	}
	s.logger.Debug("order_event_published", "Order event published", "", map[string]interface{}{
		"order_id":    event.OrderID,
		"routing_key": event.RoutingKey(),
	})
}
