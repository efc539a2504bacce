package http

import (
	"net/http"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope pushed over the socket
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type StateHandler struct {
	store  interfaces.StateStore
	logger logger.Logger
}

func NewStateHandler(store interfaces.StateStore, logger logger.Logger) *StateHandler {
	return &StateHandler{store: store, logger: logger}
}

func (h *StateHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.State().Snapshot())
}

// Stream sends the current snapshot, then every new one until the client leaves
func (h *StateHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws_upgrade_failed", "Failed to upgrade connection", requestID(r), nil, err)
		return
	}
	defer conn.Close()

	updates, cancel := h.store.Subscribe()
	defer cancel()

	h.logger.Debug("ws_connected", "State stream opened", requestID(r), map[string]interface{}{
		"remote_addr": r.RemoteAddr,
	})

	// читаем только для pong и закрытия
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.send(conn, h.store.State()); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			h.logger.Debug("ws_disconnected", "State stream closed", requestID(r), nil)
			return

		case <-r.Context().Done():
			return

		case root, ok := <-updates:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "store closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := h.send(conn, root); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StateHandler) send(conn *websocket.Conn, root state.Root) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(Message{Event: "state", Payload: root.Snapshot()}); err != nil {
		h.logger.Debug("ws_write_failed", "Failed to push snapshot", "", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
