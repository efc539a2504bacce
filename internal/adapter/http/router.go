package http

import (
	"net/http"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/gorilla/mux"
)

type Handlers struct {
	State  *StateHandler
	Menu   *MenuHandler
	Cart   *CartHandler
	Orders *OrderHandler
	UI     *UIHandler
}

// NewRouter wires every route; recovery sits inside logging so panics keep their request id
func NewRouter(h Handlers, lgr logger.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.State.Health).Methods(http.MethodGet)
	router.HandleFunc("/state", h.State.GetState).Methods(http.MethodGet)
	router.HandleFunc("/ws", h.State.Stream).Methods(http.MethodGet)

	menu := router.PathPrefix("/menu").Subrouter()
	menu.HandleFunc("", h.Menu.GetMenu).Methods(http.MethodGet)
	menu.HandleFunc("/fetch", h.Menu.FetchMenu).Methods(http.MethodPost)
	menu.HandleFunc("/{id:[0-9]+}/stock", h.Menu.UpdateStock).Methods(http.MethodPut)

	cart := router.PathPrefix("/cart").Subrouter()
	cart.HandleFunc("", h.Cart.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("", h.Cart.Clear).Methods(http.MethodDelete)
	cart.HandleFunc("/items", h.Cart.AddItem).Methods(http.MethodPost)
	cart.HandleFunc("/items/{id:[0-9]+}", h.Cart.UpdateItem).Methods(http.MethodPut)
	cart.HandleFunc("/items/{id:[0-9]+}", h.Cart.RemoveItem).Methods(http.MethodDelete)
	cart.HandleFunc("/items/{id:[0-9]+}/increment", h.Cart.Increment).Methods(http.MethodPost)
	cart.HandleFunc("/items/{id:[0-9]+}/decrement", h.Cart.Decrement).Methods(http.MethodPost)

	orders := router.PathPrefix("/orders").Subrouter()
	orders.HandleFunc("", h.Orders.GetOrders).Methods(http.MethodGet)
	orders.HandleFunc("", h.Orders.CreateOrder).Methods(http.MethodPost)
	orders.HandleFunc("/fetch", h.Orders.FetchOrders).Methods(http.MethodPost)
	orders.HandleFunc("/{id}", h.Orders.UpdateOrder).Methods(http.MethodPatch)
	orders.HandleFunc("/{id}", h.Orders.DeleteOrder).Methods(http.MethodDelete)

	ui := router.PathPrefix("/ui").Subrouter()
	ui.HandleFunc("", h.UI.GetUI).Methods(http.MethodGet)
	ui.HandleFunc("/food-page/toggle", h.UI.ToggleFoodPage).Methods(http.MethodPost)
	ui.HandleFunc("/food-page", h.UI.SetFoodPage).Methods(http.MethodPut)
	ui.HandleFunc("/cart/toggle", h.UI.ToggleCart).Methods(http.MethodPost)
	ui.HandleFunc("/cart", h.UI.SetCart).Methods(http.MethodPut)
	ui.HandleFunc("/orders-manager/toggle", h.UI.ToggleOrdersManager).Methods(http.MethodPost)
	ui.HandleFunc("/orders-manager", h.UI.SetOrdersManager).Methods(http.MethodPut)
	ui.HandleFunc("/selection", h.UI.SelectFood).Methods(http.MethodPut)
	ui.HandleFunc("/selection", h.UI.ClearSelection).Methods(http.MethodDelete)
	ui.HandleFunc("/return-to-menu", h.UI.ReturnToMenu).Methods(http.MethodPost)
	ui.HandleFunc("/close-all", h.UI.CloseAll).Methods(http.MethodPost)
	ui.HandleFunc("/reset", h.UI.Reset).Methods(http.MethodPost)
	ui.HandleFunc("/notifications", h.UI.GetNotifications).Methods(http.MethodGet)
	ui.HandleFunc("/notifications", h.UI.AddNotification).Methods(http.MethodPost)
	ui.HandleFunc("/notifications", h.UI.ClearNotifications).Methods(http.MethodDelete)
	ui.HandleFunc("/notifications/{id}", h.UI.RemoveNotification).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})

	handler := RecoveryMiddleware(lgr)(router)
	return LoggingMiddleware(lgr)(handler)
}
