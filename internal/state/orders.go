package state

import (
	"github.com/YelzhanWeb/storefront/internal/domain"
)

type OrdersState struct {
	Orders     []domain.Order `json:"orders"`
	Loading    bool           `json:"loading"`
	Submitting bool           `json:"submittingOrder"`
	Error      string         `json:"error,omitempty"`

	Create Op `json:"create"`
	Fetch  Op `json:"fetch"`
	Update Op `json:"update"`
	Delete Op `json:"delete"`
}

func InitialOrders() OrdersState {
	idle := Op{Status: StatusIdle}
	return OrdersState{
		Orders: []domain.Order{},
		Create: idle,
		Fetch:  idle,
		Update: idle,
		Delete: idle,
	}
}

type OrdersAction interface {
	Action
	ordersAction()
}

type (
	CreateOrderStarted   struct{}
	CreateOrderSucceeded struct{ Order domain.Order }
	CreateOrderFailed    struct{ Err string }

	FetchOrdersStarted   struct{}
	FetchOrdersSucceeded struct{ Orders []domain.Order }
	FetchOrdersFailed    struct{ Err string }

	UpdateOrderStarted   struct{ ID string }
	UpdateOrderSucceeded struct {
		ID     string
		Update domain.OrderUpdate
	}
	UpdateOrderFailed struct {
		ID  string
		Err string
	}

	DeleteOrderStarted   struct{ ID string }
	DeleteOrderSucceeded struct{ ID string }
	DeleteOrderFailed    struct {
		ID  string
		Err string
	}

	ClearOrdersError struct{}
	ClearOrders      struct{}
)

func (CreateOrderStarted) Name() string   { return "orders/createOrder/pending" }
func (CreateOrderSucceeded) Name() string { return "orders/createOrder/fulfilled" }
func (CreateOrderFailed) Name() string    { return "orders/createOrder/rejected" }
func (FetchOrdersStarted) Name() string   { return "orders/fetchOrders/pending" }
func (FetchOrdersSucceeded) Name() string { return "orders/fetchOrders/fulfilled" }
func (FetchOrdersFailed) Name() string    { return "orders/fetchOrders/rejected" }
func (UpdateOrderStarted) Name() string   { return "orders/updateOrder/pending" }
func (UpdateOrderSucceeded) Name() string { return "orders/updateOrder/fulfilled" }
func (UpdateOrderFailed) Name() string    { return "orders/updateOrder/rejected" }
func (DeleteOrderStarted) Name() string   { return "orders/deleteOrder/pending" }
func (DeleteOrderSucceeded) Name() string { return "orders/deleteOrder/fulfilled" }
func (DeleteOrderFailed) Name() string    { return "orders/deleteOrder/rejected" }
func (ClearOrdersError) Name() string     { return "orders/clearError" }
func (ClearOrders) Name() string          { return "orders/clearOrders" }

func (a CreateOrderFailed) Error() string { return a.Err }
func (a FetchOrdersFailed) Error() string { return a.Err }
func (a UpdateOrderFailed) Error() string { return a.Err }
func (a DeleteOrderFailed) Error() string { return a.Err }

func (CreateOrderStarted) ordersAction()   {}
func (CreateOrderSucceeded) ordersAction() {}
func (CreateOrderFailed) ordersAction()    {}
func (FetchOrdersStarted) ordersAction()   {}
func (FetchOrdersSucceeded) ordersAction() {}
func (FetchOrdersFailed) ordersAction()    {}
func (UpdateOrderStarted) ordersAction()   {}
func (UpdateOrderSucceeded) ordersAction() {}
func (UpdateOrderFailed) ordersAction()    {}
func (DeleteOrderStarted) ordersAction()   {}
func (DeleteOrderSucceeded) ordersAction() {}
func (DeleteOrderFailed) ordersAction()    {}
func (ClearOrdersError) ordersAction()     {}
func (ClearOrders) ordersAction()          {}

func ReduceOrders(s OrdersState, a OrdersAction) OrdersState {
	switch a := a.(type) {
	case CreateOrderStarted:
		s.Submitting = true
		s.Error = ""
		s.Create = pending()

	case CreateOrderSucceeded:
		s.Submitting = false
		// новый заказ в начало списка
		orders := make([]domain.Order, 0, len(s.Orders)+1)
		orders = append(orders, a.Order)
		s.Orders = append(orders, s.Orders...)
		s.Create = succeeded()

	case CreateOrderFailed:
		s.Submitting = false
		s.Error = orDefault(a.Err, "failed to create order")
		s.Create = failed(s.Error)

	case FetchOrdersStarted:
		s.Loading = true
		s.Error = ""
		s.Fetch = pending()

	case FetchOrdersSucceeded:
		s.Loading = false
		orders := append([]domain.Order{}, a.Orders...)
		domain.SortOrdersNewestFirst(orders)
		s.Orders = orders
		s.Fetch = succeeded()

	case FetchOrdersFailed:
		s.Loading = false
		s.Error = orDefault(a.Err, "failed to load orders")
		s.Fetch = failed(s.Error)

	case UpdateOrderStarted:
		s.Loading = true
		s.Error = ""
		s.Update = pending()

	case UpdateOrderSucceeded:
		s.Loading = false
		orders := make([]domain.Order, len(s.Orders))
		for i, o := range s.Orders {
			if o.ID == a.ID {
				o = a.Update.Apply(o)
			}
			orders[i] = o
		}
		s.Orders = orders
		s.Update = succeeded()

	case UpdateOrderFailed:
		s.Loading = false
		s.Error = orDefault(a.Err, "failed to update order")
		s.Update = failed(s.Error)

	case DeleteOrderStarted:
		s.Loading = true
		s.Error = ""
		s.Delete = pending()

	case DeleteOrderSucceeded:
		s.Loading = false
		orders := make([]domain.Order, 0, len(s.Orders))
		for _, o := range s.Orders {
			if o.ID != a.ID {
				orders = append(orders, o)
			}
		}
		s.Orders = orders
		s.Delete = succeeded()

	case DeleteOrderFailed:
		s.Loading = false
		s.Error = orDefault(a.Err, "failed to delete order")
		s.Delete = failed(s.Error)

	case ClearOrdersError:
		s.Error = ""

	case ClearOrders:
		s.Orders = []domain.Order{}

	default:
		unknownAction("orders", a)
	}
	return s
}
