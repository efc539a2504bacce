package ui

import (
	"context"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

// Service drives the screen flags and the notification queue
type Service struct {
	store     interfaces.StateStore
	publisher interfaces.MessagePublisher
	logger    logger.Logger

	now           func() time.Time
	autoHideDelay time.Duration
	sweepInterval time.Duration
}

var (
	_ interfaces.UIService = (*Service)(nil)
	_ interfaces.Notifier  = (*Service)(nil)
)

func NewService(store interfaces.StateStore, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		store:         store,
		publisher:     publisher,
		logger:        logger,
		now:           time.Now,
		autoHideDelay: domain.NotificationAutoHideDelay,
		sweepInterval: domain.NotificationSweepInterval,
	}
}

func (s *Service) ToggleChooseFoodPage()        { s.store.Dispatch(state.ToggleChooseFoodPage{}) }
func (s *Service) SetChooseFoodPage(value bool) { s.store.Dispatch(state.SetChooseFoodPage{Value: value}) }
func (s *Service) ToggleCart()                  { s.store.Dispatch(state.ToggleCart{}) }
func (s *Service) SetShowCart(value bool)       { s.store.Dispatch(state.SetShowCart{Value: value}) }
func (s *Service) ClearSelection()              { s.store.Dispatch(state.SetSelectedFood{}) }
func (s *Service) ReturnToMenu()                { s.store.Dispatch(state.ReturnToMenu{}) }
func (s *Service) CloseAllModals()              { s.store.Dispatch(state.CloseAllModals{}) }
func (s *Service) Reset()                       { s.store.Dispatch(state.ResetUI{}) }

func (s *Service) SetShowOrdersManager(value bool) {
	s.store.Dispatch(state.SetShowOrdersManager{Value: value})
}

// SelectFood puts the current menu snapshot of the item into the ordering flow
func (s *Service) SelectFood(id int) error {
	item, ok := domain.FindMenuItem(s.store.State().Menu.Items, id)
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	s.store.Dispatch(state.SetSelectedFood{Item: &item})
	return nil
}

// Notify queues a notification. AutoHide ones are removed after the auto-hide delay.
func (s *Service) Notify(t domain.NotificationType, message string, autoHide bool) domain.Notification {
	n := domain.NewNotification(t, message, autoHide, s.now())
	s.store.Dispatch(state.AddNotification{Notification: n})

	if autoHide {
		time.AfterFunc(s.autoHideDelay, func() {
			s.store.Dispatch(state.RemoveNotification{ID: n.ID})
		})
	}

	if err := s.publisher.PublishNotification(context.Background(), n); err != nil {
		s.logger.Warn("notification_publish_failed", "Failed to publish notification", "", map[string]interface{}{
			"notification_id": n.ID,
			"error":           err.Error(),
		})
	}
	return n
}

func (s *Service) Dismiss(id string) {
	s.store.Dispatch(state.RemoveNotification{ID: id})
}

func (s *Service) ClearAll() {
	s.store.Dispatch(state.ClearNotifications{})
}

// Run sweeps stale notifications until ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			before := len(s.store.State().UI.Notifications)
			after := len(s.store.Dispatch(state.ClearOldNotifications{Now: s.now()}).UI.Notifications)
			if removed := before - after; removed > 0 {
				s.logger.Debug("notifications_swept", "Old notifications removed", "", map[string]interface{}{
					"removed": removed,
				})
			}
		}
	}
}
