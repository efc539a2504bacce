package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

// OrderEventHandler prints order lifecycle events as they arrive
type OrderEventHandler struct {
	logger logger.Logger
	out    io.Writer
}

func NewOrderEventHandler(logger logger.Logger) *OrderEventHandler {
	return &OrderEventHandler{
		logger: logger,
		out:    os.Stdout,
	}
}

func (h *OrderEventHandler) HandleOrderEvent(ctx context.Context, body []byte) error {
	var event interfaces.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order event", "", nil, err)
		return err
	}
	if event.OrderID == "" {
		err := fmt.Errorf("order event %q without order id", event.Type)
		h.logger.Error("message_invalid", "Order event rejected", "", nil, err)
		return err
	}

	h.logger.Debug("order_event_received", "Received order event", event.OrderID, map[string]interface{}{
		"type": event.Type,
	})

	switch {
	case event.Order != nil:
		fmt.Fprintf(h.out, "Order %s %s: %d x %s for %s (%.2f)\n",
			event.OrderID, event.Type, event.Order.Quantity, event.Order.FoodName,
			event.Order.CustomerName, event.Order.TotalAmount)
	case event.Update != nil:
		fmt.Fprintf(h.out, "Order %s %s: fields %v\n", event.OrderID, event.Type, sortedKeys(event.Update.Fields()))
	default:
		fmt.Fprintf(h.out, "Order %s %s\n", event.OrderID, event.Type)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
