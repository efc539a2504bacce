package state

import (
	"time"

	"github.com/YelzhanWeb/storefront/internal/domain"
)

type UIState struct {
	ChooseFoodPage    bool                  `json:"isChooseFoodPage"`
	ShowCart          bool                  `json:"showCart"`
	ShowOrdersManager bool                  `json:"showOrdersManager"`
	SelectedFood      *domain.MenuItem      `json:"selectedFood"`
	Notifications     []domain.Notification `json:"notifications"`
}

func InitialUI() UIState {
	return UIState{Notifications: []domain.Notification{}}
}

// Flow is the derived position in the food selection flow
type Flow string

const (
	FlowBrowsing  Flow = "browsing"
	FlowSelecting Flow = "selecting"
	FlowOrdering  Flow = "ordering"
)

func (s UIState) Flow() Flow {
	switch {
	case !s.ChooseFoodPage:
		return FlowBrowsing
	case s.SelectedFood == nil:
		return FlowSelecting
	default:
		return FlowOrdering
	}
}

type UIAction interface {
	Action
	uiAction()
}

type (
	ToggleChooseFoodPage  struct{}
	SetChooseFoodPage     struct{ Value bool }
	ToggleCart            struct{}
	SetShowCart           struct{ Value bool }
	ToggleOrdersManager   struct{}
	SetShowOrdersManager  struct{ Value bool }
	SetSelectedFood       struct{ Item *domain.MenuItem }
	ReturnToMenu          struct{}
	AddNotification       struct{ Notification domain.Notification }
	RemoveNotification    struct{ ID string }
	ClearNotifications    struct{}
	ClearOldNotifications struct{ Now time.Time }
	ResetUI               struct{}
	CloseAllModals        struct{}
)

func (ToggleChooseFoodPage) Name() string  { return "ui/toggleChooseFoodPage" }
func (SetChooseFoodPage) Name() string     { return "ui/setChooseFoodPage" }
func (ToggleCart) Name() string            { return "ui/toggleCart" }
func (SetShowCart) Name() string           { return "ui/setShowCart" }
func (ToggleOrdersManager) Name() string   { return "ui/toggleOrdersManager" }
func (SetShowOrdersManager) Name() string  { return "ui/setShowOrdersManager" }
func (SetSelectedFood) Name() string       { return "ui/setSelectedFood" }
func (ReturnToMenu) Name() string          { return "ui/returnToMenu" }
func (AddNotification) Name() string       { return "ui/addNotification" }
func (RemoveNotification) Name() string    { return "ui/removeNotification" }
func (ClearNotifications) Name() string    { return "ui/clearNotifications" }
func (ClearOldNotifications) Name() string { return "ui/clearOldNotifications" }
func (ResetUI) Name() string               { return "ui/resetUI" }
func (CloseAllModals) Name() string        { return "ui/closeAllModals" }

func (ToggleChooseFoodPage) uiAction()  {}
func (SetChooseFoodPage) uiAction()     {}
func (ToggleCart) uiAction()            {}
func (SetShowCart) uiAction()           {}
func (ToggleOrdersManager) uiAction()   {}
func (SetShowOrdersManager) uiAction()  {}
func (SetSelectedFood) uiAction()       {}
func (ReturnToMenu) uiAction()          {}
func (AddNotification) uiAction()       {}
func (RemoveNotification) uiAction()    {}
func (ClearNotifications) uiAction()    {}
func (ClearOldNotifications) uiAction() {}
func (ResetUI) uiAction()               {}
func (CloseAllModals) uiAction()        {}

func ReduceUI(s UIState, a UIAction) UIState {
	notifications := append([]domain.Notification{}, s.Notifications...)

	switch a := a.(type) {
	// entering or leaving the food page drops the selection
	case ToggleChooseFoodPage:
		s.ChooseFoodPage = !s.ChooseFoodPage
		s.SelectedFood = nil

	case SetChooseFoodPage:
		if s.ChooseFoodPage != a.Value || !a.Value {
			s.SelectedFood = nil
		}
		s.ChooseFoodPage = a.Value

	case ToggleCart:
		s.ShowCart = !s.ShowCart

	case SetShowCart:
		s.ShowCart = a.Value

	case ToggleOrdersManager:
		s.ShowOrdersManager = !s.ShowOrdersManager

	case SetShowOrdersManager:
		s.ShowOrdersManager = a.Value

	case SetSelectedFood:
		if a.Item == nil {
			s.SelectedFood = nil
		} else {
			item := *a.Item
			s.SelectedFood = &item
		}

	case ReturnToMenu:
		s.SelectedFood = nil
		s.ChooseFoodPage = false

	case AddNotification:
		notifications = append(notifications, a.Notification)
		if over := len(notifications) - domain.MaxNotifications; over > 0 {
			notifications = notifications[over:]
		}

	case RemoveNotification:
		kept := notifications[:0]
		for _, n := range notifications {
			if n.ID != a.ID {
				kept = append(kept, n)
			}
		}
		notifications = kept

	case ClearNotifications:
		notifications = []domain.Notification{}

	case ClearOldNotifications:
		kept := notifications[:0]
		for _, n := range notifications {
			if !n.Expired(a.Now) {
				kept = append(kept, n)
			}
		}
		notifications = kept

	case ResetUI:
		return InitialUI()

	case CloseAllModals:
		s.ShowCart = false
		s.ShowOrdersManager = false
		s.SelectedFood = nil

	default:
		unknownAction("ui", a)
	}

	s.Notifications = notifications
	return s
}
