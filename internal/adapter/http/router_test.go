package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/adapter/repository"
	"github.com/YelzhanWeb/storefront/internal/app/cart"
	"github.com/YelzhanWeb/storefront/internal/app/menu"
	"github.com/YelzhanWeb/storefront/internal/app/order"
	"github.com/YelzhanWeb/storefront/internal/app/store"
	"github.com/YelzhanWeb/storefront/internal/app/storefront"
	"github.com/YelzhanWeb/storefront/internal/app/ui"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
	"github.com/gorilla/websocket"
)

type unreachableStore struct {
	interfaces.RemoteStore
}

func (unreachableStore) Get(context.Context, string) (interfaces.Snapshot, error) {
	return interfaces.Snapshot{}, errors.New("network unreachable")
}

func (unreachableStore) Push(context.Context, string, any) (string, error) {
	return "", errors.New("network unreachable")
}

type testServer struct {
	store   *store.Store
	handler http.Handler
}

func newTestServer(t *testing.T, remote interfaces.RemoteStore) *testServer {
	t.Helper()
	lgr := logger.NewNop()

	st := store.New(state.Initial(), lgr)
	t.Cleanup(st.Close)

	nop := rabbitmq.NewNopPublisher()
	menuSvc := menu.NewService(st, repository.NewMenuRepository(remote), lgr)
	orderSvc := order.NewService(st, repository.NewOrderRepository(remote), nop, lgr)
	uiSvc := ui.NewService(st, nop, lgr)
	cartSvc := cart.NewService(st, lgr)
	front := storefront.NewService(st, orderSvc, uiSvc, lgr)

	handler := NewRouter(Handlers{
		State:  NewStateHandler(st, lgr),
		Menu:   NewMenuHandler(st, menuSvc, "/static", lgr),
		Cart:   NewCartHandler(st, cartSvc, front, lgr),
		Orders: NewOrderHandler(st, orderSvc, front, lgr),
		UI:     NewUIHandler(st, uiSvc, uiSvc, front, lgr),
	}, lgr)

	return &testServer{store: st, handler: handler}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}

	rec = s.do(t, http.MethodGet, "/health", "")
	if !strings.HasPrefix(rec.Header().Get("X-Request-ID"), "req-") {
		t.Errorf("expected generated request id, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestGetMenuIncludesImageURL(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodGet, "/menu", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp MenuResponse
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(resp.Items))
	}
	if !strings.HasPrefix(resp.Items[0].ImageURL, "/static/images/") {
		t.Errorf("unexpected image url %q", resp.Items[0].ImageURL)
	}
}

func TestFetchMenuSeedsRemote(t *testing.T) {
	remote := remotestore.NewMemoryStore()
	s := newTestServer(t, remote)

	rec := s.do(t, http.MethodPost, "/menu/fetch", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	items, exists, err := repository.NewMenuRepository(remote).List(context.Background())
	if err != nil || !exists || len(items) != 4 {
		t.Fatalf("expected seeded menu, got %d items exists=%v err=%v", len(items), exists, err)
	}
}

func TestFetchMenuRemoteFailure(t *testing.T) {
	s := newTestServer(t, unreachableStore{})

	rec := s.do(t, http.MethodPost, "/menu/fetch", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if got := s.store.State().Menu.Error; got != "network unreachable" {
		t.Errorf("expected menu error to be recorded, got %q", got)
	}
}

func TestUpdateStockValidation(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "ok", path: "/menu/1/stock", body: `{"quantity":12}`, status: http.StatusOK},
		{name: "zero allowed", path: "/menu/2/stock", body: `{"quantity":0}`, status: http.StatusOK},
		{name: "negative", path: "/menu/1/stock", body: `{"quantity":-1}`, status: http.StatusBadRequest},
		{name: "missing", path: "/menu/1/stock", body: `{}`, status: http.StatusBadRequest},
		{name: "bad json", path: "/menu/1/stock", body: `{`, status: http.StatusBadRequest},
		{name: "unknown item", path: "/menu/99/stock", body: `{"quantity":1}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	item, _ := domain.FindMenuItem(s.store.State().Menu.Items, 1)
	if item.Quantity != 12 {
		t.Errorf("expected stock 12, got %d", item.Quantity)
	}
}

func TestValidationErrorBodyUsesJSONNames(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodPost, "/cart/items", `{"foodId":1,"quantity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Error != "Validation failed" || len(resp.Errors) != 1 || resp.Errors[0].Field != "quantity" {
		t.Errorf("unexpected error body %+v", resp)
	}
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodPost, "/cart/items", `{"foodId":1,"quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var c state.CartState
	decodeBody(t, rec, &c)
	if c.TotalItems != 2 || c.TotalAmount != 48 {
		t.Errorf("unexpected cart %+v", c)
	}

	if rec := s.do(t, http.MethodPost, "/cart/items/1/increment", ""); rec.Code != http.StatusOK {
		t.Errorf("increment: expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPut, "/cart/items/1", `{"quantity":5}`); rec.Code != http.StatusOK {
		t.Errorf("update: expected 200, got %d", rec.Code)
	}
	if got := s.store.State().Cart.TotalItems; got != 5 {
		t.Errorf("expected 5 items, got %d", got)
	}

	if rec := s.do(t, http.MethodPost, "/cart/items/3/increment", ""); rec.Code != http.StatusNotFound {
		t.Errorf("increment missing entry: expected 404, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/cart/items", `{"foodId":42,"quantity":1}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown food: expected 404, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodDelete, "/cart", "")
	if rec.Code != http.StatusOK || s.store.State().Cart.TotalItems != 0 {
		t.Errorf("expected cleared cart, got %d items", s.store.State().Cart.TotalItems)
	}
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodPost, "/orders", `{"foodId":2,"quantity":1,"customerName":"Luis","phone":"600123456"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Order
	decodeBody(t, rec, &created)
	if created.ID == "" || created.TotalAmount != 22 {
		t.Fatalf("unexpected order %+v", created)
	}

	rec = s.do(t, http.MethodPatch, "/orders/"+created.ID, `{"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Order
	decodeBody(t, rec, &updated)
	if updated.Quantity != 3 || updated.TotalAmount != 66 {
		t.Errorf("unexpected updated order %+v", updated)
	}

	if rec := s.do(t, http.MethodPatch, "/orders/"+created.ID, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty update: expected 400, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPatch, "/orders/missing", `{"quantity":1}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown order: expected 404, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/orders/fetch", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}
	var orders state.OrdersState
	decodeBody(t, rec, &orders)
	if len(orders.Orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(orders.Orders))
	}

	if rec := s.do(t, http.MethodDelete, "/orders/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	if got := len(s.store.State().Orders.Orders); got != 0 {
		t.Errorf("expected no orders, got %d", got)
	}
}

func TestDeleteOrderInvalidID(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodDelete, "/orders/a.b", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "id" {
		t.Errorf("expected id field error, got %+v", resp)
	}
	if notes := s.store.State().UI.Notifications; len(notes) != 0 {
		t.Errorf("expected no notifications, got %+v", notes)
	}
}

func TestRespondErrorMapsInvalidPath(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, logger.NewNop(), httptest.NewRequest(http.MethodGet, "/", nil),
		fmt.Errorf("failed to get: %w", remotestore.ErrInvalidPath))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderValidationAndRemoteFailure(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())
	rec := s.do(t, http.MethodPost, "/orders", `{"foodId":1,"quantity":1,"customerName":"","phone":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	broken := newTestServer(t, unreachableStore{})
	rec = broken.do(t, http.MethodPost, "/orders", `{"foodId":1,"quantity":1,"customerName":"Ana","phone":"600111222"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
	notes := broken.store.State().UI.Notifications
	if len(notes) != 1 || notes[0].Type != domain.NotificationError {
		t.Errorf("expected one error notification, got %+v", notes)
	}
}

func TestUIRoutes(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodPut, "/ui/selection", `{"foodId":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d", rec.Code)
	}
	var resp UIResponse
	decodeBody(t, rec, &resp)
	if resp.SelectedFood == nil || resp.SelectedFood.ID != 3 || resp.Flow != s.store.State().UI.Flow() {
		t.Errorf("unexpected ui %+v", resp)
	}

	if rec := s.do(t, http.MethodPut, "/ui/cart", `{"value":true}`); rec.Code != http.StatusOK || !s.store.State().UI.ShowCart {
		t.Errorf("set cart: got %d showCart=%v", rec.Code, s.store.State().UI.ShowCart)
	}
	if rec := s.do(t, http.MethodPut, "/ui/cart", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing flag: expected 400, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/ui/close-all", ""); rec.Code != http.StatusOK || s.store.State().UI.ShowCart {
		t.Errorf("close all: got %d showCart=%v", rec.Code, s.store.State().UI.ShowCart)
	}

	if rec := s.do(t, http.MethodPost, "/ui/orders-manager/toggle", ""); rec.Code != http.StatusOK {
		t.Errorf("toggle orders manager: expected 200, got %d", rec.Code)
	}
	if !s.store.State().UI.ShowOrdersManager {
		t.Error("expected orders manager to be open")
	}
}

func TestNotificationRoutes(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	rec := s.do(t, http.MethodPost, "/ui/notifications", `{"type":"info","message":"Hola"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var n domain.Notification
	decodeBody(t, rec, &n)
	if n.ID == "" || n.Message != "Hola" {
		t.Errorf("unexpected notification %+v", n)
	}

	if rec := s.do(t, http.MethodPost, "/ui/notifications", `{"type":"loud","message":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad type: expected 400, got %d", rec.Code)
	}

	if rec := s.do(t, http.MethodDelete, "/ui/notifications/"+n.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("dismiss: expected 204, got %d", rec.Code)
	}
	if got := len(s.store.State().UI.Notifications); got != 0 {
		t.Errorf("expected no notifications, got %d", got)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())

	if rec := s.do(t, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/menu", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != fallbackBody {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRecoveryKeepsResponseAlreadySent(t *testing.T) {
	var buf bytes.Buffer
	handler := RecoveryMiddleware(logger.NewWithWriter("test", "debug", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"partial":`))
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status to stay 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"partial":` {
		t.Errorf("fallback must not be appended, got %q", rec.Body.String())
	}
	if !strings.Contains(buf.String(), `"headers_sent":true`) {
		t.Errorf("expected panic to be logged, got:\n%s", buf.String())
	}
}

func TestStreamPushesSnapshots(t *testing.T) {
	s := newTestServer(t, remotestore.NewMemoryStore())
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	type frame struct {
		Event   string         `json:"event"`
		Payload state.Snapshot `json:"payload"`
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first frame
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("failed to read initial snapshot: %v", err)
	}
	if first.Event != "state" || first.Payload.UI.ShowCart {
		t.Fatalf("unexpected initial frame %+v", first.Event)
	}

	s.store.Dispatch(state.ToggleCart{})

	for {
		var next frame
		if err := conn.ReadJSON(&next); err != nil {
			t.Fatalf("expected an update after dispatch: %v", err)
		}
		if next.Payload.UI.ShowCart {
			return
		}
	}
}
