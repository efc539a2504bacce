package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/domain"
)

type NotificationHandler struct {
	logger logger.Logger
	out    io.Writer
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
		out:    os.Stdout,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var n domain.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	h.logger.Debug("notification_received", "Received storefront notification", n.ID, map[string]interface{}{
		"type":      n.Type,
		"timestamp": n.Timestamp,
	})

	// Print to console
	fmt.Fprintf(h.out, "[%s] %s\n", n.Type, n.Message)
	return nil
}
