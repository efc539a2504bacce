package repository

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

const OrdersPath = "orders"

type orderRepository struct {
	store interfaces.RemoteStore
}

func NewOrderRepository(store interfaces.RemoteStore) interfaces.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, record domain.OrderRecord) (domain.Order, error) {
	key, err := r.store.Push(ctx, OrdersPath, record)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return record.Order(key), nil
}

// List returns orders newest first. An empty store yields an empty list.
func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	snap, err := r.store.Get(ctx, OrdersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	children, err := snap.Children()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(children))
	for _, child := range children {
		var record domain.OrderRecord
		if err := child.Decode(&record); err != nil {
			return nil, err
		}
		orders = append(orders, record.Order(child.Key))
	}

	domain.SortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, update domain.OrderUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if err := r.store.Update(ctx, OrdersPath+"/"+id, update.Fields()); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Remove(ctx, OrdersPath+"/"+id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
