package cart

import (
	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

// Service covers cart intents that leave the menu stock alone.
// Removal with stock restore lives in the storefront workflows.
type Service struct {
	store  interfaces.StateStore
	logger logger.Logger
}

var _ interfaces.CartService = (*Service)(nil)

func NewService(store interfaces.StateStore, logger logger.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// AddItem snapshots the current menu item into the cart
func (s *Service) AddItem(id, quantity int) error {
	item, ok := domain.FindMenuItem(s.store.State().Menu.Items, id)
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	if quantity < 1 {
		return domain.ValidationErrors{{Field: "quantity", Message: "quantity must be at least 1"}}
	}

	s.store.Dispatch(state.AddItem{Item: item, Quantity: quantity})
	s.logger.Debug("cart_item_added", "Item added to cart", "", map[string]interface{}{
		"item_id":  id,
		"quantity": quantity,
	})
	return nil
}

func (s *Service) IncrementQuantity(id int) error {
	if err := s.requireEntry(id); err != nil {
		return err
	}
	s.store.Dispatch(state.IncrementQuantity{ID: id})
	return nil
}

// UpdateQuantity removes the entry for a non-positive quantity
func (s *Service) UpdateQuantity(id, quantity int) error {
	if err := s.requireEntry(id); err != nil {
		return err
	}
	s.store.Dispatch(state.UpdateQuantity{ID: id, Quantity: quantity})
	return nil
}

func (s *Service) Clear() {
	s.store.Dispatch(state.ClearCart{})
}

func (s *Service) requireEntry(id int) error {
	if _, ok := domain.FindCartEntry(s.store.State().Cart.Items, id); !ok {
		return domain.ErrCartItemNotFound
	}
	return nil
}
