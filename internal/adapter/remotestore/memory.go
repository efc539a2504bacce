package remotestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/YelzhanWeb/storefront/internal/interfaces"
)

var _ interfaces.RemoteStore = (*MemoryStore)(nil)

// MemoryStore keeps the whole database as a JSON tree. Empty nodes are pruned,
// arrays are stored as objects keyed by index.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
	ids  *PushIDGenerator
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: make(map[string]any),
		ids:  NewPushIDGenerator(),
	}
}

func (m *MemoryStore) Get(ctx context.Context, path string) (interfaces.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.Snapshot{}, err
	}
	segments, err := SplitPath(path)
	if err != nil {
		return interfaces.Snapshot{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var node any = m.root
	if len(segments) > 0 {
		node = lookup(m.root, segments)
	} else if len(m.root) == 0 {
		node = nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("failed to encode %q: %w", path, err)
	}
	return interfaces.Snapshot{Key: lastSegment(segments), Value: raw}, nil
}

func (m *MemoryStore) Push(ctx context.Context, path string, value any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	segments, err := SplitPath(path)
	if err != nil {
		return "", err
	}
	normalized, err := Normalize(value)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.ids.Next()
	m.set(append(segments, key), normalized)
	return key, nil
}

func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segments, err := SplitPath(path)
	if err != nil {
		return err
	}

	type change struct {
		path  []string
		value any
	}
	changes := make([]change, 0, len(fields))
	for key, value := range fields {
		sub, err := SplitPath(key)
		if err != nil || len(sub) == 0 {
			return fmt.Errorf("%w: update key %q", ErrInvalidPath, key)
		}
		normalized, err := Normalize(value)
		if err != nil {
			return err
		}
		full := append(append([]string{}, segments...), sub...)
		changes = append(changes, change{path: full, value: normalized})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range changes {
		m.set(c.path, c.value)
	}
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segments, err := SplitPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(segments) == 0 {
		m.root = make(map[string]any)
		return nil
	}
	m.set(segments, nil)
	return nil
}

// set writes value at segments; a nil or empty value deletes the node and prunes empty parents
func (m *MemoryStore) set(segments []string, value any) {
	if len(segments) == 0 {
		if obj, ok := value.(map[string]any); ok {
			m.root = obj
		} else {
			m.root = make(map[string]any)
		}
		return
	}
	setNode(m.root, segments, value)
}

func setNode(node map[string]any, segments []string, value any) {
	key := segments[0]

	if len(segments) == 1 {
		if isEmpty(value) {
			delete(node, key)
		} else {
			node[key] = value
		}
		return
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		if isEmpty(value) {
			return
		}
		child = make(map[string]any)
		node[key] = child
	}

	setNode(child, segments[1:], value)
	if len(child) == 0 {
		delete(node, key)
	}
}

func lookup(node map[string]any, segments []string) any {
	var current any = node
	for _, seg := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[seg]
		if !ok {
			return nil
		}
	}
	return current
}

// Normalize round-trips the value through JSON so the tree only holds plain JSON types
func Normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return compact(out), nil
}

func compact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			c := compact(child)
			if isEmpty(c) {
				delete(t, k)
			} else {
				t[k] = c
			}
		}
		return t
	case []any:
		obj := make(map[string]any, len(t))
		for i, child := range t {
			c := compact(child)
			if !isEmpty(c) {
				obj[strconv.Itoa(i)] = c
			}
		}
		return obj
	default:
		return v
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	obj, ok := v.(map[string]any)
	return ok && len(obj) == 0
}
