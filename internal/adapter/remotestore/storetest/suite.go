// Package storetest holds behaviour checks shared by every RemoteStore backend.
package storetest

import (
	"context"
	"testing"

	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

type record struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Run exercises store against collections prefixed with prefix so backends
// backed by a shared database do not collide between runs.
func Run(t *testing.T, store interfaces.RemoteStore, prefix string) {
	t.Helper()
	ctx := context.Background()

	menu := prefix + "menu"
	orders := prefix + "orders"

	t.Run("missing collection", func(t *testing.T) {
		snap, err := store.Get(ctx, menu)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if snap.Exists() {
			t.Fatalf("expected no value, got %s", snap.Value)
		}
	})

	t.Run("collection update then read", func(t *testing.T) {
		err := store.Update(ctx, menu, map[string]any{
			"1": record{Name: "Hamburguesa de Pollo", Quantity: 40, Price: 24},
			"2": record{Name: "Helado", Quantity: 30, Price: 6},
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}

		snap, err := store.Get(ctx, menu)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		children, err := snap.Children()
		if err != nil {
			t.Fatalf("children failed: %v", err)
		}
		if len(children) != 2 || children[0].Key != "1" || children[1].Key != "2" {
			t.Fatalf("unexpected children: %+v", children)
		}

		var r record
		if err := children[0].Decode(&r); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if r.Name != "Hamburguesa de Pollo" || r.Quantity != 40 || r.Price != 24 {
			t.Errorf("unexpected record: %+v", r)
		}
	})

	t.Run("document patch", func(t *testing.T) {
		if err := store.Update(ctx, menu+"/1", map[string]any{"quantity": 38}); err != nil {
			t.Fatalf("patch failed: %v", err)
		}

		snap, err := store.Get(ctx, menu+"/1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		var r record
		if err := snap.Decode(&r); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if r.Quantity != 38 || r.Name != "Hamburguesa de Pollo" {
			t.Errorf("expected shallow merge, got %+v", r)
		}

		if err := store.Update(ctx, menu+"/1", map[string]any{"price": nil}); err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		field, err := store.Get(ctx, menu+"/1/price")
		if err != nil {
			t.Fatalf("get field failed: %v", err)
		}
		if field.Exists() {
			t.Errorf("expected price removed, got %s", field.Value)
		}
	})

	t.Run("push keeps creation order", func(t *testing.T) {
		first, err := store.Push(ctx, orders, map[string]any{"foodId": 1, "quantity": 2})
		if err != nil {
			t.Fatalf("push failed: %v", err)
		}
		second, err := store.Push(ctx, orders, map[string]any{"foodId": 3, "quantity": 1})
		if err != nil {
			t.Fatalf("push failed: %v", err)
		}
		if first == "" || second == "" || first == second {
			t.Fatalf("expected distinct keys, got %q %q", first, second)
		}

		snap, err := store.Get(ctx, orders)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		children, err := snap.Children()
		if err != nil {
			t.Fatalf("children failed: %v", err)
		}
		if len(children) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(children))
		}

		if err := store.Remove(ctx, orders+"/"+first); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		gone, _ := store.Get(ctx, orders+"/"+first)
		if gone.Exists() {
			t.Errorf("expected %s removed", first)
		}
	})

	t.Run("remove collection", func(t *testing.T) {
		for _, c := range []string{menu, orders} {
			if err := store.Remove(ctx, c); err != nil {
				t.Fatalf("remove %s failed: %v", c, err)
			}
			snap, _ := store.Get(ctx, c)
			if snap.Exists() {
				t.Errorf("expected %s to be empty, got %s", c, snap.Value)
			}
		}
	})
}
