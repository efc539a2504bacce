package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

// ErrUnsupportedPath is returned for writes the table layout cannot express
var ErrUnsupportedPath = errors.New("path not supported by postgres store")

// documentStore maps the key-path model onto one jsonb row per document:
// "<collection>/<key>" is a row, deeper segments address fields inside data.
type documentStore struct {
	db  DB
	ids *remotestore.PushIDGenerator
}

func NewDocumentStore(db DB) interfaces.RemoteStore {
	return &documentStore{db: db, ids: remotestore.NewPushIDGenerator()}
}

func (s *documentStore) Get(ctx context.Context, path string) (interfaces.Snapshot, error) {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return interfaces.Snapshot{}, err
	}

	switch len(segments) {
	case 0:
		return interfaces.Snapshot{}, fmt.Errorf("%w: %q", ErrUnsupportedPath, path)

	case 1:
		raw, err := s.collection(ctx, segments[0])
		if err != nil {
			return interfaces.Snapshot{}, err
		}
		return interfaces.Snapshot{Key: segments[0], Value: raw}, nil

	default:
		query := `SELECT data #> $3 FROM documents WHERE collection = $1 AND key = $2`
		var raw []byte
		err := s.db.QueryRow(ctx, query, segments[0], segments[1], segments[2:]).Scan(&raw)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return interfaces.Snapshot{}, fmt.Errorf("failed to get %q: %w", path, err)
		}
		if raw == nil {
			raw = []byte("null")
		}
		return interfaces.Snapshot{Key: segments[len(segments)-1], Value: raw}, nil
	}
}

func (s *documentStore) collection(ctx context.Context, name string) (json.RawMessage, error) {
	rows, err := s.db.Query(ctx, `SELECT key, data FROM documents WHERE collection = $1 ORDER BY created_at, key`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %q: %w", name, err)
	}
	defer rows.Close()

	docs := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs[key] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %q: %w", name, err)
	}

	if len(docs) == 0 {
		return json.RawMessage("null"), nil
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection %q: %w", name, err)
	}
	return raw, nil
}

func (s *documentStore) Push(ctx context.Context, path string, value any) (string, error) {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return "", err
	}
	if len(segments) != 1 {
		return "", fmt.Errorf("%w: push to %q", ErrUnsupportedPath, path)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	key := s.ids.Next()
	query := `INSERT INTO documents (collection, key, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := s.db.Exec(ctx, query, segments[0], key, string(data)); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return key, nil
}

func (s *documentStore) Update(ctx context.Context, path string, fields map[string]any) error {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return err
	}

	switch len(segments) {
	case 1:
		return s.updateCollection(ctx, segments[0], fields)
	case 2:
		return s.patchDocument(ctx, segments[0], segments[1], fields)
	default:
		return fmt.Errorf("%w: update %q", ErrUnsupportedPath, path)
	}
}

// updateCollection replaces whole documents; a nil value deletes the document
func (s *documentStore) updateCollection(ctx context.Context, collection string, docs map[string]any) error {
	return InTx(ctx, s.db, func(tx Tx) error {
		for key, value := range docs {
			if _, err := remotestore.SplitPath(key); err != nil {
				return err
			}

			if value == nil {
				if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND key = $2`, collection, key); err != nil {
					return fmt.Errorf("failed to delete document %q: %w", key, err)
				}
				continue
			}

			data, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode document %q: %w", key, err)
			}

			query := `
				INSERT INTO documents (collection, key, data)
				VALUES ($1, $2, $3::jsonb)
				ON CONFLICT (collection, key)
				DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
			`
			if _, err := tx.Exec(ctx, query, collection, key, string(data)); err != nil {
				return fmt.Errorf("failed to upsert document %q: %w", key, err)
			}
		}
		return nil
	})
}

// patchDocument merges top-level fields into data and drops the ones set to nil
func (s *documentStore) patchDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	set := make(map[string]any, len(fields))
	removed := make([]string, 0)
	for field, value := range fields {
		if value == nil {
			removed = append(removed, field)
			continue
		}
		set[field] = value
	}

	patch, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	query := `
		INSERT INTO documents (collection, key, data)
		VALUES ($1, $2, $3::jsonb - $4::text[])
		ON CONFLICT (collection, key)
		DO UPDATE SET data = (documents.data || EXCLUDED.data) - $4::text[], updated_at = NOW()
	`
	return InTx(ctx, s.db, func(tx Tx) error {
		if _, err := tx.Exec(ctx, query, collection, key, string(patch), removed); err != nil {
			return fmt.Errorf("failed to patch document %q: %w", key, err)
		}

		// пустые документы не храним
		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND key = $2 AND data = '{}'::jsonb`, collection, key); err != nil {
			return fmt.Errorf("failed to prune document %q: %w", key, err)
		}
		return nil
	})
}

func (s *documentStore) Remove(ctx context.Context, path string) error {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return err
	}

	switch len(segments) {
	case 0:
		return fmt.Errorf("%w: remove %q", ErrUnsupportedPath, path)
	case 1:
		_, err = s.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, segments[0])
	case 2:
		_, err = s.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND key = $2`, segments[0], segments[1])
	default:
		_, err = s.db.Exec(ctx,
			`UPDATE documents SET data = data #- $3::text[], updated_at = NOW() WHERE collection = $1 AND key = $2`,
			segments[0], segments[1], segments[2:])
	}
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}
