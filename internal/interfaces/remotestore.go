package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// RemoteStore is a key-path addressed document store. Paths are slash separated,
// e.g. "menu/3" or "orders".
type RemoteStore interface {
	Get(ctx context.Context, path string) (Snapshot, error)
	// Push appends value under path with a generated key and returns the key
	Push(ctx context.Context, path string, value any) (string, error)
	// Update shallow-merges fields into the node at path. A nil value removes the field.
	Update(ctx context.Context, path string, fields map[string]any) error
	Remove(ctx context.Context, path string) error
}

// Snapshot is the raw JSON value found at a path
type Snapshot struct {
	Key   string
	Value json.RawMessage
}

func (s Snapshot) Exists() bool {
	v := bytes.TrimSpace(s.Value)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

func (s Snapshot) Decode(v any) error {
	if !s.Exists() {
		return fmt.Errorf("no value at %q", s.Key)
	}
	if err := json.Unmarshal(s.Value, v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", s.Key, err)
	}
	return nil
}

// Children lists the direct children of an object node in key order.
// Arrays (sequential integer keys) are returned keyed by index with null holes skipped.
func (s Snapshot) Children() ([]Snapshot, error) {
	if !s.Exists() {
		return nil, nil
	}

	v := bytes.TrimSpace(s.Value)
	switch v[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err != nil {
			return nil, fmt.Errorf("failed to decode children of %q: %w", s.Key, err)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		children := make([]Snapshot, 0, len(keys))
		for _, k := range keys {
			child := Snapshot{Key: k, Value: obj[k]}
			if child.Exists() {
				children = append(children, child)
			}
		}
		return children, nil

	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err != nil {
			return nil, fmt.Errorf("failed to decode children of %q: %w", s.Key, err)
		}
		children := make([]Snapshot, 0, len(arr))
		for i, raw := range arr {
			child := Snapshot{Key: strconv.Itoa(i), Value: raw}
			if child.Exists() {
				children = append(children, child)
			}
		}
		return children, nil

	default:
		return nil, fmt.Errorf("value at %q has no children", s.Key)
	}
}
