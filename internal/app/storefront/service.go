package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

// Тексты уведомлений
const (
	msgOrderFailed  = "Error al procesar el pedido"
	msgUpdated      = "Pedido actualizado correctamente"
	msgUpdateFailed = "Error al actualizar el pedido"
	msgDeleteFailed = "Error al eliminar el pedido"
)

// Service runs the intents that span several slices. The individual
// dispatches are not atomic: a reader may observe the steps one by one.
type Service struct {
	store    interfaces.StateStore
	orders   interfaces.OrderService
	notifier interfaces.Notifier
	logger   logger.Logger
}

var _ interfaces.StorefrontService = (*Service)(nil)

func NewService(store interfaces.StateStore, orders interfaces.OrderService, notifier interfaces.Notifier, logger logger.Logger) *Service {
	return &Service{
		store:    store,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// PlaceOrder validates the form against the current menu, stores the order,
// then takes the stock, adds the item to the cart and notifies.
func (s *Service) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	item, found := domain.FindMenuItem(s.store.State().Menu.Items, req.FoodID)
	if errs := req.Validate(item, found); errs != nil {
		s.logger.Debug("validation_failed", "Order form rejected", "", map[string]interface{}{
			"errors": []domain.ValidationError(errs),
		})
		return domain.Order{}, errs
	}

	order, err := s.orders.CreateOrder(ctx, req.CreateData(item))
	if err != nil {
		s.notifier.Notify(domain.NotificationError, msgOrderFailed, true)
		return domain.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	s.store.Dispatch(state.DecreaseStock{ID: item.ID, Quantity: req.Quantity})
	s.store.Dispatch(state.AddItem{Item: item, Quantity: req.Quantity})
	s.notifier.Notify(domain.NotificationSuccess, fmt.Sprintf("¡Pedido de %s enviado con éxito!", item.Name), true)

	s.logger.Info("order_placed", fmt.Sprintf("Order placed for %s", order.CustomerName), "", map[string]interface{}{
		"order_id": order.ID,
		"food_id":  order.FoodID,
		"quantity": order.Quantity,
		"total":    order.TotalAmount,
	})
	return order, nil
}

// RemoveCartItem returns the entry's quantity to the menu stock and drops it
func (s *Service) RemoveCartItem(id int) error {
	entry, ok := domain.FindCartEntry(s.store.State().Cart.Items, id)
	if !ok {
		return domain.ErrCartItemNotFound
	}

	s.store.Dispatch(state.IncreaseStock{ID: id, Quantity: entry.Quantity})
	s.store.Dispatch(state.RemoveItem{ID: id})

	s.logger.Debug("cart_item_removed", fmt.Sprintf("Removed %s from cart", entry.Item.Name), "", map[string]interface{}{
		"item_id":  id,
		"restored": entry.Quantity,
	})
	return nil
}

func (s *Service) DecrementCartItem(id int) error {
	entry, ok := domain.FindCartEntry(s.store.State().Cart.Items, id)
	if !ok {
		return domain.ErrCartItemNotFound
	}
	if entry.Quantity == 1 {
		return s.RemoveCartItem(id)
	}

	s.store.Dispatch(state.DecrementQuantity{ID: id})
	return nil
}

// EditOrder changes quantity and contact fields of a cached order.
// A new quantity reprices the order from its current unit price.
func (s *Service) EditOrder(ctx context.Context, id string, cmd interfaces.EditOrderCommand) (domain.Order, error) {
	current, ok := domain.FindOrder(s.store.State().Orders.Orders, id)
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	update, errs := buildUpdate(current, cmd)
	if errs != nil {
		return domain.Order{}, errs
	}

	if err := s.orders.UpdateOrder(ctx, id, update); err != nil {
		s.notifier.Notify(domain.NotificationError, msgUpdateFailed, true)
		return domain.Order{}, fmt.Errorf("failed to edit order: %w", err)
	}

	s.notifier.Notify(domain.NotificationSuccess, msgUpdated, true)

	updated, ok := domain.FindOrder(s.store.State().Orders.Orders, id)
	if !ok {
		// заказ мог быть удален параллельно
		return update.Apply(current), nil
	}
	return updated, nil
}

func buildUpdate(current domain.Order, cmd interfaces.EditOrderCommand) (domain.OrderUpdate, domain.ValidationErrors) {
	var (
		update domain.OrderUpdate
		errs   domain.ValidationErrors
	)

	if cmd.Quantity != nil {
		if *cmd.Quantity < 1 {
			errs = append(errs, domain.ValidationError{Field: "quantity", Message: "quantity must be at least 1"})
		} else {
			update = domain.QuantityUpdate(current, *cmd.Quantity)
		}
	}
	if cmd.CustomerName != nil {
		name := strings.TrimSpace(*cmd.CustomerName)
		if name == "" {
			errs = append(errs, domain.ValidationError{Field: "customerName", Message: "name is required"})
		}
		update.CustomerName = &name
	}
	if cmd.Phone != nil {
		phone := strings.TrimSpace(*cmd.Phone)
		if phone == "" {
			errs = append(errs, domain.ValidationError{Field: "phone", Message: "phone is required"})
		}
		update.Phone = &phone
	}

	if errs == nil && update.IsEmpty() {
		errs = append(errs, domain.ValidationError{Field: "order", Message: domain.ErrEmptyUpdate.Error()})
	}
	return update, errs
}

// DeleteOrder removes the order and names its food in the notification
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	if err := domain.ValidateOrderID(id); err != nil {
		return err
	}

	name := id
	if cached, ok := domain.FindOrder(s.store.State().Orders.Orders, id); ok {
		name = cached.FoodName
	}

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		s.notifier.Notify(domain.NotificationError, msgDeleteFailed, true)
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.notifier.Notify(domain.NotificationSuccess, fmt.Sprintf("Pedido de %s eliminado", name), true)
	return nil
}

// ToggleOrdersManager flips the panel and loads the orders when it opens
func (s *Service) ToggleOrdersManager(ctx context.Context) error {
	root := s.store.Dispatch(state.ToggleOrdersManager{})
	if !root.UI.ShowOrdersManager {
		return nil
	}

	if _, err := s.orders.FetchOrders(ctx); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	return nil
}
