package http

import (
	"net/http"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	store      interfaces.StateStore
	service    interfaces.OrderService
	storefront interfaces.StorefrontService
	logger     logger.Logger
}

func NewOrderHandler(store interfaces.StateStore, service interfaces.OrderService, storefront interfaces.StorefrontService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		store:      store,
		service:    service,
		storefront: storefront,
		logger:     logger,
	}
}

// Имя и телефон проверяет доменная валидация формы
type CreateOrderRequest struct {
	FoodID       int    `json:"foodId" validate:"required"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
}

type UpdateOrderRequest struct {
	Quantity     *int    `json:"quantity" validate:"omitempty,min=1"`
	CustomerName *string `json:"customerName"`
	Phone        *string `json:"phone"`
}

func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.State().Orders)
}

func (h *OrderHandler) FetchOrders(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.FetchOrders(r.Context()); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.store.State().Orders)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	order, err := h.storefront.PlaceOrder(r.Context(), domain.OrderRequest{
		FoodID:       req.FoodID,
		Quantity:     req.Quantity,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	order, err := h.storefront.EditOrder(r.Context(), mux.Vars(r)["id"], interfaces.EditOrderCommand{
		Quantity:     req.Quantity,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.storefront.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
