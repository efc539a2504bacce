package http

import (
	"net/http"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
	"github.com/gorilla/mux"
)

type UIHandler struct {
	store      interfaces.StateStore
	service    interfaces.UIService
	notifier   interfaces.Notifier
	storefront interfaces.StorefrontService
	logger     logger.Logger
}

func NewUIHandler(store interfaces.StateStore, service interfaces.UIService, notifier interfaces.Notifier, storefront interfaces.StorefrontService, logger logger.Logger) *UIHandler {
	return &UIHandler{
		store:      store,
		service:    service,
		notifier:   notifier,
		storefront: storefront,
		logger:     logger,
	}
}

type UIResponse struct {
	state.UIState
	Flow state.Flow `json:"flow"`
}

type FlagRequest struct {
	Value *bool `json:"value" validate:"required"`
}

type SelectFoodRequest struct {
	FoodID int `json:"foodId" validate:"required"`
}

type NotificationRequest struct {
	Type     string `json:"type" validate:"required,oneof=success error info warning"`
	Message  string `json:"message" validate:"required"`
	AutoHide bool   `json:"autoHide"`
}

func (h *UIHandler) GetUI(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) ToggleFoodPage(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleChooseFoodPage()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) SetFoodPage(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.service.SetChooseFoodPage)
}

func (h *UIHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleCart()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) SetCart(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.service.SetShowCart)
}

// ToggleOrdersManager loads the orders when the panel opens. A failed load
// leaves the panel open and reports the error.
func (h *UIHandler) ToggleOrdersManager(w http.ResponseWriter, r *http.Request) {
	if err := h.storefront.ToggleOrdersManager(r.Context()); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) SetOrdersManager(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.service.SetShowOrdersManager)
}

func (h *UIHandler) SelectFood(w http.ResponseWriter, r *http.Request) {
	var req SelectFoodRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if err := h.service.SelectFood(req.FoodID); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.service.ClearSelection()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) ReturnToMenu(w http.ResponseWriter, r *http.Request) {
	h.service.ReturnToMenu()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) CloseAll(w http.ResponseWriter, r *http.Request) {
	h.service.CloseAllModals()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset()
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.State().UI.Notifications)
}

func (h *UIHandler) AddNotification(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	n := h.notifier.Notify(domain.NotificationType(req.Type), req.Message, req.AutoHide)
	respondJSON(w, http.StatusCreated, n)
}

func (h *UIHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.notifier.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (h *UIHandler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	h.notifier.Dismiss(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *UIHandler) setFlag(w http.ResponseWriter, r *http.Request, set func(bool)) {
	var req FlagRequest
	if err := decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	set(*req.Value)
	h.respond(w, http.StatusOK)
}

func (h *UIHandler) respond(w http.ResponseWriter, statusCode int) {
	ui := h.store.State().UI
	respondJSON(w, statusCode, UIResponse{UIState: ui, Flow: ui.Flow()})
}
