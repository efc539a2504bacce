package interfaces

import (
	"context"

	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/state"
)

// StateStore is the single owner of the application state
type StateStore interface {
	Dispatch(a state.Action) state.Root
	State() state.Root
	Subscribe() (<-chan state.Root, func())
}

// Интерфейсы Сервисов (Business Logic)
type MenuService interface {
	FetchMenu(ctx context.Context) ([]domain.MenuItem, error)
	UpdateMenuItemStock(ctx context.Context, id, quantity int) error
	DecreaseStock(id, quantity int)
	IncreaseStock(id, quantity int)
	ClearError()
}

type CartService interface {
	AddItem(id, quantity int) error
	IncrementQuantity(id int) error
	UpdateQuantity(id, quantity int) error
	Clear()
}

type OrderService interface {
	CreateOrder(ctx context.Context, data domain.CreateOrderData) (domain.Order, error)
	FetchOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, id string, update domain.OrderUpdate) error
	DeleteOrder(ctx context.Context, id string) error
	ClearError()
	ClearOrders()
}

type UIService interface {
	ToggleChooseFoodPage()
	SetChooseFoodPage(value bool)
	ToggleCart()
	SetShowCart(value bool)
	SetShowOrdersManager(value bool)
	SelectFood(id int) error
	ClearSelection()
	ReturnToMenu()
	CloseAllModals()
	Reset()
}

type Notifier interface {
	Notify(t domain.NotificationType, message string, autoHide bool) domain.Notification
	Dismiss(id string)
	ClearAll()
}

// StorefrontService runs the intents that touch more than one slice
type StorefrontService interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	RemoveCartItem(id int) error
	DecrementCartItem(id int) error
	EditOrder(ctx context.Context, id string, cmd EditOrderCommand) (domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ToggleOrdersManager(ctx context.Context) error
}

// Команды
type EditOrderCommand struct {
	Quantity     *int
	CustomerName *string
	Phone        *string
}
