package interfaces

import (
	"context"

	"github.com/YelzhanWeb/storefront/internal/domain"
)

// Репозитории поверх RemoteStore
type MenuRepository interface {
	// List returns the stored items sorted by id; exists is false for an empty store
	List(ctx context.Context) (items []domain.MenuItem, exists bool, err error)
	Seed(ctx context.Context, items []domain.MenuItem) error
	UpdateStock(ctx context.Context, id, quantity int) error
}

type OrderRepository interface {
	Create(ctx context.Context, record domain.OrderRecord) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id string, update domain.OrderUpdate) error
	Delete(ctx context.Context, id string) error
}
