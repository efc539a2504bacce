package remotestore

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestMemoryStoreGetMissingPath(t *testing.T) {
	store := NewMemoryStore()

	snap, err := store.Get(context.Background(), "menu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Exists() {
		t.Fatalf("expected empty snapshot, got %s", snap.Value)
	}
	if snap.Key != "menu" {
		t.Errorf("expected key menu, got %q", snap.Key)
	}
}

func TestMemoryStoreUpdateMergesShallow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Update(ctx, "menu", map[string]any{
		"1": map[string]any{"name": "Helado", "quantity": 30, "price": 6},
		"2": map[string]any{"name": "Patatas", "quantity": 50, "price": 8},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := store.Update(ctx, "menu/1", map[string]any{"quantity": 12}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var item struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	snap, _ := store.Get(ctx, "menu/1")
	if err := snap.Decode(&item); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if item.Name != "Helado" || item.Quantity != 12 || item.Price != 6 {
		t.Errorf("unexpected item after update: %+v", item)
	}
}

func TestMemoryStoreNilRemovesField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Update(ctx, "orders/a", map[string]any{"phone": "555", "quantity": 2})
	if err := store.Update(ctx, "orders/a", map[string]any{"phone": nil}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	snap, _ := store.Get(ctx, "orders/a/phone")
	if snap.Exists() {
		t.Errorf("expected phone to be removed, got %s", snap.Value)
	}

	_ = store.Update(ctx, "orders/a", map[string]any{"quantity": nil})
	snap, _ = store.Get(ctx, "orders")
	if snap.Exists() {
		t.Errorf("expected empty parents to be pruned, got %s", snap.Value)
	}
}

func TestMemoryStorePushAndRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		key, err := store.Push(ctx, "orders", map[string]any{"quantity": i + 1})
		if err != nil {
			t.Fatalf("push failed: %v", err)
		}
		if len(key) != 20 {
			t.Fatalf("expected 20 char key, got %q", key)
		}
		keys = append(keys, key)
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("expected push keys in creation order: %v", keys)
	}

	snap, _ := store.Get(ctx, "orders")
	children, err := snap.Children()
	if err != nil {
		t.Fatalf("children failed: %v", err)
	}
	if len(children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(children))
	}

	if err := store.Remove(ctx, "orders/"+keys[0]); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	snap, _ = store.Get(ctx, "orders/"+keys[0])
	if snap.Exists() {
		t.Errorf("expected removed order to be gone")
	}
}

func TestMemoryStoreArraysBecomeKeyedChildren(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Update(ctx, "", map[string]any{"list": []any{nil, "a", "b"}})

	snap, _ := store.Get(ctx, "list")
	children, err := snap.Children()
	if err != nil {
		t.Fatalf("children failed: %v", err)
	}
	if len(children) != 2 || children[0].Key != "1" || children[1].Key != "2" {
		t.Errorf("unexpected children: %+v", children)
	}
}

func TestMemoryStoreRejectsInvalidPath(t *testing.T) {
	store := NewMemoryStore()

	tests := []string{"menu//1", "menu/a.b", "orders/$x", "a/[0]"}
	for _, path := range tests {
		if _, err := store.Get(context.Background(), path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("path %q: expected ErrInvalidPath, got %v", path, err)
		}
	}
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	if _, err := store.Push(ctx, "orders", map[string]any{"a": 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPushIDsSameMillisecondStayOrdered(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := &PushIDGenerator{now: func() time.Time { return fixed }}

	prev := gen.Next()
	for i := 0; i < 100; i++ {
		next := gen.Next()
		if next <= prev {
			t.Fatalf("expected %q > %q", next, prev)
		}
		if next[:8] != prev[:8] {
			t.Fatalf("expected shared timestamp prefix, got %q and %q", prev, next)
		}
		prev = next
	}
}

func TestPushIDsFollowClock(t *testing.T) {
	current := time.UnixMilli(1700000000000)
	gen := &PushIDGenerator{now: func() time.Time { return current }}

	first := gen.Next()
	current = current.Add(time.Second)
	second := gen.Next()

	if first[:8] >= second[:8] {
		t.Errorf("expected later timestamp prefix: %q then %q", first, second)
	}
}
