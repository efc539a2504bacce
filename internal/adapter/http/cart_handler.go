package http

import (
	"net/http"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

type CartHandler struct {
	store      interfaces.StateStore
	service    interfaces.CartService
	storefront interfaces.StorefrontService
	logger     logger.Logger
}

func NewCartHandler(store interfaces.StateStore, service interfaces.CartService, storefront interfaces.StorefrontService, logger logger.Logger) *CartHandler {
	return &CartHandler{
		store:      store,
		service:    service,
		storefront: storefront,
		logger:     logger,
	}
}

type AddCartItemRequest struct {
	FoodID   int `json:"foodId" validate:"required"`
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.State().Cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	if err := h.service.AddItem(req.FoodID, req.Quantity); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.store.State().Cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	var req UpdateCartItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	h.finish(w, r, h.service.UpdateQuantity(id, *req.Quantity))
}

// RemoveItem also returns the entry's quantity to the menu stock
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	h.finish(w, r, h.storefront.RemoveCartItem(id))
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	h.finish(w, r, h.service.IncrementQuantity(id))
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	h.finish(w, r, h.storefront.DecrementCartItem(id))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear()
	respondJSON(w, http.StatusOK, h.store.State().Cart)
}

func (h *CartHandler) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.store.State().Cart)
}
