package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/adapter/repository"
	"github.com/YelzhanWeb/storefront/internal/app/store"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type fakeRepo struct {
	items    []domain.MenuItem
	listErr  error
	seedErr  error
	stockErr error
	seeded   int
}

func (f *fakeRepo) List(context.Context) ([]domain.MenuItem, bool, error) {
	return f.items, len(f.items) > 0, f.listErr
}

func (f *fakeRepo) Seed(context.Context, []domain.MenuItem) error {
	f.seeded++
	return f.seedErr
}

func (f *fakeRepo) UpdateStock(context.Context, int, int) error {
	return f.stockErr
}

func newStore(t *testing.T, root state.Root) *store.Store {
	t.Helper()
	st := store.New(root, logger.NewNop())
	t.Cleanup(st.Close)
	return st
}

func TestFetchMenuSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	remote := remotestore.NewMemoryStore()
	repo := repository.NewMenuRepository(remote)

	root := state.Initial()
	root.Menu.Items = nil
	st := newStore(t, root)
	svc := NewService(st, repo, logger.NewNop())

	items, err := svc.FetchMenu(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 seeded items, got %d", len(items))
	}

	menu := st.State().Menu
	if len(menu.Items) != 4 || menu.Loading || menu.Fetch.Status != state.StatusSucceeded {
		t.Errorf("unexpected menu state %+v", menu)
	}

	stored, exists, err := repo.List(ctx)
	if err != nil || !exists || len(stored) != 4 {
		t.Fatalf("expected catalog written to store, got %v %v %v", stored, exists, err)
	}
	if stored[0].Name != "Hamburguesa de Pollo" || stored[0].Quantity != 40 {
		t.Errorf("unexpected first item %+v", stored[0])
	}
}

func TestFetchMenuReadsExistingItems(t *testing.T) {
	repo := &fakeRepo{items: []domain.MenuItem{{ID: 7, Name: "Tarta", Price: 5, Quantity: 3}}}
	st := newStore(t, state.Initial())
	svc := NewService(st, repo, logger.NewNop())

	if _, err := svc.FetchMenu(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.seeded != 0 {
		t.Error("expected no seeding when the store has items")
	}
	if items := st.State().Menu.Items; len(items) != 1 || items[0].ID != 7 {
		t.Errorf("expected items replaced, got %+v", items)
	}
}

func TestFetchMenuSeedFailureStillReturnsCatalog(t *testing.T) {
	repo := &fakeRepo{seedErr: errors.New("permission denied")}
	st := newStore(t, state.Initial())
	svc := NewService(st, repo, logger.NewNop())

	items, err := svc.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("expected seed failure to be tolerated, got %v", err)
	}
	if len(items) != 4 || repo.seeded != 1 {
		t.Errorf("expected default catalog after one seed attempt, got %d items", len(items))
	}
	if st.State().Menu.Error != "" {
		t.Errorf("expected no error in state, got %q", st.State().Menu.Error)
	}
}

func TestFetchMenuFailure(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("network unreachable")}
	st := newStore(t, state.Initial())
	svc := NewService(st, repo, logger.NewNop())

	if _, err := svc.FetchMenu(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	menu := st.State().Menu
	if menu.Loading {
		t.Error("expected loading to be cleared")
	}
	if menu.Error != "network unreachable" || !menu.Fetch.IsFailed() {
		t.Errorf("unexpected menu state %+v", menu)
	}
	if len(menu.Items) != 4 {
		t.Error("expected preloaded catalog to stay in place")
	}
}

func TestUpdateMenuItemStock(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		quantity int
		stockErr error
		wantErr  bool
		wantQty  int
	}{
		{name: "success patches local", id: 2, quantity: 12, wantQty: 12},
		{name: "remote failure keeps local", id: 2, quantity: 12, stockErr: errors.New("boom"), wantErr: true, wantQty: 30},
		{name: "unknown item", id: 99, quantity: 1, wantErr: true, wantQty: 30},
		{name: "negative quantity", id: 2, quantity: -1, wantErr: true, wantQty: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t, state.Initial())
			svc := NewService(st, &fakeRepo{stockErr: tt.stockErr}, logger.NewNop())

			err := svc.UpdateMenuItemStock(context.Background(), tt.id, tt.quantity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}

			item, _ := domain.FindMenuItem(st.State().Menu.Items, 2)
			if item.Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, item.Quantity)
			}
		})
	}
}

func TestUnknownStockUpdateReturnsNotFound(t *testing.T) {
	st := newStore(t, state.Initial())
	svc := NewService(st, &fakeRepo{}, logger.NewNop())

	if err := svc.UpdateMenuItemStock(context.Background(), 42, 1); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestLocalStockAdjustments(t *testing.T) {
	st := newStore(t, state.Initial())
	svc := NewService(st, &fakeRepo{}, logger.NewNop())

	svc.DecreaseStock(4, 10)
	svc.DecreaseStock(4, 100)
	item, _ := domain.FindMenuItem(st.State().Menu.Items, 4)
	if item.Quantity != 20 {
		t.Errorf("expected 20 after valid and oversized decrease, got %d", item.Quantity)
	}

	svc.IncreaseStock(4, 10)
	item, _ = domain.FindMenuItem(st.State().Menu.Items, 4)
	if item.Quantity != 30 {
		t.Errorf("expected round trip back to 30, got %d", item.Quantity)
	}
}

func TestClearError(t *testing.T) {
	st := newStore(t, state.Initial())
	svc := NewService(st, &fakeRepo{listErr: errors.New("x")}, logger.NewNop())

	_, _ = svc.FetchMenu(context.Background())
	svc.ClearError()
	if st.State().Menu.Error != "" {
		t.Errorf("expected error cleared, got %q", st.State().Menu.Error)
	}
}
