package menu

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type Service struct {
	store  interfaces.StateStore
	repo   interfaces.MenuRepository
	logger logger.Logger
}

var _ interfaces.MenuService = (*Service)(nil)

func NewService(store interfaces.StateStore, repo interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{
		store:  store,
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) FetchMenu(ctx context.Context) ([]domain.MenuItem, error) {
	s.store.Dispatch(state.FetchMenuStarted{})

	items, err := s.load(ctx)
	if err != nil {
		s.store.Dispatch(state.FetchMenuFailed{Err: err.Error()})
		return nil, err
	}

	s.store.Dispatch(state.FetchMenuSucceeded{Items: items})
	return items, nil
}

// load reads the stored menu, seeding the default catalog into an empty store.
// A failed seed still yields the catalog.
func (s *Service) load(ctx context.Context) ([]domain.MenuItem, error) {
	items, exists, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return items, nil
	}

	catalog := domain.DefaultCatalog()
	if err := s.repo.Seed(ctx, catalog); err != nil {
		s.logger.Error("menu_seed_failed", "Failed to seed default menu", "", nil, err)
		return catalog, nil
	}

	s.logger.Info("menu_seeded", "Default menu written to the store", "", map[string]interface{}{
		"items": len(catalog),
	})
	return catalog, nil
}

func (s *Service) UpdateMenuItemStock(ctx context.Context, id, quantity int) error {
	if _, ok := domain.FindMenuItem(s.store.State().Menu.Items, id); !ok {
		return domain.ErrMenuItemNotFound
	}
	if quantity < 0 {
		return domain.ValidationErrors{{Field: "quantity", Message: "quantity must not be negative"}}
	}

	s.store.Dispatch(state.StockUpdateStarted{ID: id})

	if err := s.repo.UpdateStock(ctx, id, quantity); err != nil {
		s.store.Dispatch(state.StockUpdateFailed{ID: id, Err: err.Error()})
		return err
	}

	s.store.Dispatch(state.StockUpdateSucceeded{ID: id, Quantity: quantity})
	s.logger.Debug("stock_updated", fmt.Sprintf("Stock of item %d set to %d", id, quantity), "", map[string]interface{}{
		"item_id":  id,
		"quantity": quantity,
	})
	return nil
}

func (s *Service) DecreaseStock(id, quantity int) {
	s.store.Dispatch(state.DecreaseStock{ID: id, Quantity: quantity})
}

func (s *Service) IncreaseStock(id, quantity int) {
	s.store.Dispatch(state.IncreaseStock{ID: id, Quantity: quantity})
}

func (s *Service) ClearError() {
	s.store.Dispatch(state.ClearMenuError{})
}
