package state

import (
	"github.com/YelzhanWeb/storefront/internal/domain"
)

// CartState totals are always recomputed from Items
type CartState struct {
	Items       []domain.CartEntry `json:"items"`
	TotalItems  int                `json:"totalItems"`
	TotalAmount float64            `json:"totalAmount"`
}

func InitialCart() CartState {
	return CartState{Items: []domain.CartEntry{}}
}

type CartAction interface {
	Action
	cartAction()
}

type (
	// AddItem merges into an existing entry with the same item id
	AddItem struct {
		Item     domain.MenuItem
		Quantity int
	}
	RemoveItem        struct{ ID int }
	IncrementQuantity struct{ ID int }
	// DecrementQuantity removes the entry when its quantity is 1
	DecrementQuantity struct{ ID int }
	// UpdateQuantity removes the entry for a non-positive quantity
	UpdateQuantity struct{ ID, Quantity int }
	ClearCart      struct{}
)

func (AddItem) Name() string           { return "cart/addItem" }
func (RemoveItem) Name() string        { return "cart/removeItem" }
func (IncrementQuantity) Name() string { return "cart/incrementQuantity" }
func (DecrementQuantity) Name() string { return "cart/decrementQuantity" }
func (UpdateQuantity) Name() string    { return "cart/updateQuantity" }
func (ClearCart) Name() string         { return "cart/clearCart" }

func (AddItem) cartAction()           {}
func (RemoveItem) cartAction()        {}
func (IncrementQuantity) cartAction() {}
func (DecrementQuantity) cartAction() {}
func (UpdateQuantity) cartAction()    {}
func (ClearCart) cartAction()         {}

func ReduceCart(s CartState, a CartAction) CartState {
	items := append([]domain.CartEntry(nil), s.Items...)

	switch a := a.(type) {
	case AddItem:
		if a.Quantity <= 0 {
			return s
		}
		if i := cartIndex(items, a.Item.ID); i >= 0 {
			items[i].Quantity += a.Quantity
		} else {
			items = append(items, domain.CartEntry{Item: a.Item, Quantity: a.Quantity})
		}

	case RemoveItem:
		items = removeCartEntry(items, a.ID)

	case IncrementQuantity:
		if i := cartIndex(items, a.ID); i >= 0 {
			items[i].Quantity++
		}

	case DecrementQuantity:
		if i := cartIndex(items, a.ID); i >= 0 {
			if items[i].Quantity > 1 {
				items[i].Quantity--
			} else {
				items = removeCartEntry(items, a.ID)
			}
		}

	case UpdateQuantity:
		if i := cartIndex(items, a.ID); i >= 0 {
			if a.Quantity > 0 {
				items[i].Quantity = a.Quantity
			} else {
				items = removeCartEntry(items, a.ID)
			}
		}

	case ClearCart:
		items = nil

	default:
		unknownAction("cart", a)
	}

	return newCart(items)
}

func newCart(items []domain.CartEntry) CartState {
	if items == nil {
		items = []domain.CartEntry{}
	}
	totalItems, totalAmount := domain.CartTotals(items)
	return CartState{Items: items, TotalItems: totalItems, TotalAmount: totalAmount}
}

func cartIndex(items []domain.CartEntry, id int) int {
	for i, entry := range items {
		if entry.Item.ID == id {
			return i
		}
	}
	return -1
}

func removeCartEntry(items []domain.CartEntry, id int) []domain.CartEntry {
	out := items[:0]
	for _, entry := range items {
		if entry.Item.ID != id {
			out = append(out, entry)
		}
	}
	return out
}
