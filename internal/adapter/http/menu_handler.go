package http

import (
	"net/http"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type MenuHandler struct {
	store        interfaces.StateStore
	service      interfaces.MenuService
	imageBaseURL string
	logger       logger.Logger
}

func NewMenuHandler(store interfaces.StateStore, service interfaces.MenuService, imageBaseURL string, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		store:        store,
		service:      service,
		imageBaseURL: imageBaseURL,
		logger:       logger,
	}
}

type MenuItemResponse struct {
	domain.MenuItem
	ImageURL string `json:"imageUrl"`
}

type MenuResponse struct {
	Items       []MenuItemResponse `json:"items"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	Fetch       state.Op           `json:"fetch"`
	StockUpdate state.Op           `json:"stockUpdate"`
}

type UpdateStockRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view(h.store.State().Menu))
}

func (h *MenuHandler) FetchMenu(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.FetchMenu(r.Context()); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.view(h.store.State().Menu))
}

func (h *MenuHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	var req UpdateStockRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	if err := h.service.UpdateMenuItemStock(r.Context(), id, *req.Quantity); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.view(h.store.State().Menu))
}

func (h *MenuHandler) view(menu state.MenuState) MenuResponse {
	items := make([]MenuItemResponse, len(menu.Items))
	for i, item := range menu.Items {
		items[i] = MenuItemResponse{MenuItem: item, ImageURL: item.ImageURL(h.imageBaseURL)}
	}
	return MenuResponse{
		Items:       items,
		Loading:     menu.Loading,
		Error:       menu.Error,
		Fetch:       menu.Fetch,
		StockUpdate: menu.StockUpdate,
	}
}
