package cart

import (
	"errors"
	"testing"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/app/store"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/state"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(state.Initial(), logger.NewNop())
	t.Cleanup(st.Close)
	return NewService(st, logger.NewNop()), st
}

func TestAddItemMergesAndTotals(t *testing.T) {
	svc, st := newService(t)

	if err := svc.AddItem(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(3, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart := st.State().Cart
	if len(cart.Items) != 2 || cart.TotalItems != 4 || cart.TotalAmount != 80 {
		t.Errorf("unexpected cart %+v", cart)
	}

	// корзина не трогает склад
	item, _ := domain.FindMenuItem(st.State().Menu.Items, 1)
	if item.Quantity != 40 {
		t.Errorf("expected stock untouched, got %d", item.Quantity)
	}
}

func TestAddItemErrors(t *testing.T) {
	svc, st := newService(t)

	if err := svc.AddItem(99, 1); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}

	var verrs domain.ValidationErrors
	if err := svc.AddItem(1, 0); !errors.As(err, &verrs) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(st.State().Cart.Items) != 0 {
		t.Error("expected empty cart")
	}
}

func TestQuantityChanges(t *testing.T) {
	svc, st := newService(t)
	_ = svc.AddItem(2, 1)

	if err := svc.IncrementQuantity(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State().Cart.TotalItems != 2 {
		t.Errorf("expected 2 items, got %d", st.State().Cart.TotalItems)
	}

	if err := svc.UpdateQuantity(2, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State().Cart.TotalAmount != 110 {
		t.Errorf("expected total 110, got %v", st.State().Cart.TotalAmount)
	}

	if err := svc.UpdateQuantity(2, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.State().Cart.Items) != 0 {
		t.Error("expected entry removed at quantity 0")
	}

	if err := svc.IncrementQuantity(2); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Errorf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestClear(t *testing.T) {
	svc, st := newService(t)
	_ = svc.AddItem(1, 1)
	_ = svc.AddItem(4, 3)

	svc.Clear()
	cart := st.State().Cart
	if len(cart.Items) != 0 || cart.TotalItems != 0 || cart.TotalAmount != 0 {
		t.Errorf("unexpected cart after clear %+v", cart)
	}
}
