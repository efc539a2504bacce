package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter("storefront", "debug", &buf)

	lgr.Info("order_created", "Order created", "req-1", map[string]interface{}{"order_id": "abc"})
	lgr.Error("remote_failed", "Remote call failed", "req-2", nil, errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Level != "info" || first.Service != "storefront" || first.Action != "order_created" {
		t.Errorf("unexpected entry: %+v", first)
	}
	if first.RequestID != "req-1" || first.Message != "Order created" {
		t.Errorf("unexpected entry: %+v", first)
	}
	if first.Details["order_id"] != "abc" {
		t.Errorf("expected details to carry order_id, got %v", first.Details)
	}

	second := entries[1]
	if second.Level != "error" || second.Error == nil || second.Error.Msg != "boom" {
		t.Errorf("unexpected error entry: %+v", second)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter("storefront", "info", &buf)

	lgr.Debug("noise", "hidden", "", nil)
	lgr.Warn("careful", "shown", "", nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != "warning" {
		t.Errorf("expected warning level, got %s", entries[0].Level)
	}
}
