package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

const MenuPath = "menu"

type menuRepository struct {
	store interfaces.RemoteStore
}

func NewMenuRepository(store interfaces.RemoteStore) interfaces.MenuRepository {
	return &menuRepository{store: store}
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, bool, error) {
	snap, err := r.store.Get(ctx, MenuPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read menu: %w", err)
	}
	if !snap.Exists() {
		return nil, false, nil
	}

	children, err := snap.Children()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read menu: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(children))
	for _, child := range children {
		id, err := strconv.Atoi(child.Key)
		if err != nil {
			return nil, false, fmt.Errorf("invalid menu key %q: %w", child.Key, err)
		}

		var record domain.MenuRecord
		if err := child.Decode(&record); err != nil {
			return nil, false, err
		}
		items = append(items, record.Item(id))
	}

	domain.SortMenuByID(items)
	return items, len(items) > 0, nil
}

// Seed writes every item under its id in a single update
func (r *menuRepository) Seed(ctx context.Context, items []domain.MenuItem) error {
	records := make(map[string]any, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		records[strconv.Itoa(item.ID)] = item.Record()
	}

	if err := r.store.Update(ctx, MenuPath, records); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	return nil
}

func (r *menuRepository) UpdateStock(ctx context.Context, id, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("menu item %d: quantity must not be negative", id)
	}

	path := MenuPath + "/" + strconv.Itoa(id)
	if err := r.store.Update(ctx, path, map[string]any{"quantity": quantity}); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
