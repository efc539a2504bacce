package store

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type unknownUIAction struct{}

func (unknownUIAction) Name() string { return "ui/unknown" }

func TestDispatchIsSerialised(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	defer st.Close()

	item := domain.DefaultCatalog()[2]

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(state.AddItem{Item: item, Quantity: 1})
		}()
	}
	wg.Wait()

	cart := st.State().Cart
	if cart.TotalItems != 50 || len(cart.Items) != 1 || cart.TotalAmount != 400 {
		t.Errorf("expected 50 items for 400, got %d items for %.2f", cart.TotalItems, cart.TotalAmount)
	}
}

func TestDispatchReturnsNewState(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	defer st.Close()

	root := st.Dispatch(state.ToggleCart{})
	if !root.UI.ShowCart || !st.State().UI.ShowCart {
		t.Error("expected cart to be shown")
	}
}

func TestSubscribersGetLatestSnapshot(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	defer st.Close()

	updates, cancel := st.Subscribe()
	defer cancel()

	for i := 0; i < 3; i++ {
		st.Dispatch(state.ToggleCart{})
	}

	select {
	case root := <-updates:
		// three toggles, slow reader only sees the last one
		if !root.UI.ShowCart {
			t.Error("expected the latest snapshot")
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	select {
	case <-updates:
		t.Error("expected coalesced updates")
	default:
	}
}

func TestCancelSubscription(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	defer st.Close()

	updates, cancel := st.Subscribe()
	cancel()
	cancel()

	if _, ok := <-updates; ok {
		t.Error("expected closed channel after cancel")
	}
	st.Dispatch(state.ToggleCart{})
}

func TestCloseEndsSubscriptionsAndDropsActions(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	updates, cancel := st.Subscribe()

	st.Close()
	st.Close()
	cancel()

	if _, ok := <-updates; ok {
		t.Error("expected closed channel after Close")
	}

	root := st.Dispatch(state.ToggleCart{})
	if root.UI.ShowCart || st.State().UI.ShowCart {
		t.Error("dispatch after close must not change state")
	}
}

func TestReducerPanicKeepsState(t *testing.T) {
	st := New(state.Initial(), logger.NewNop())
	defer st.Close()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected dispatch to panic")
			}
		}()
		st.Dispatch(unknownUIAction{})
	}()

	root := st.Dispatch(state.ToggleCart{})
	if !root.UI.ShowCart {
		t.Error("store must keep working after a reducer panic")
	}
}

func TestActionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	st := New(state.Initial(), logger.NewWithWriter("test", "debug", &buf))

	st.Dispatch(state.FetchMenuStarted{})
	st.Dispatch(state.FetchMenuFailed{Err: "offline"})
	st.Dispatch(state.ToggleCart{})
	st.Close()

	out := buf.String()
	for _, want := range []string{`"action":"action_pending"`, `"action":"action_rejected"`, `"action":"action_dispatched"`, "offline"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %s, got:\n%s", want, out)
		}
	}
}
