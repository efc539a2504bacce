package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/config"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotObject = errors.New("mongo store only holds objects at document level")

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// documentStore keeps one MongoDB collection per top-level path segment and one
// document per key, with _id holding the key. Deeper segments become dotted field paths.
type documentStore struct {
	db  *mongo.Database
	ids *remotestore.PushIDGenerator
}

func NewDocumentStore(db *mongo.Database) interfaces.RemoteStore {
	return &documentStore{db: db, ids: remotestore.NewPushIDGenerator()}
}

func (s *documentStore) Get(ctx context.Context, path string) (interfaces.Snapshot, error) {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return interfaces.Snapshot{}, err
	}
	if len(segments) == 0 {
		return interfaces.Snapshot{}, fmt.Errorf("%w: get of the root", remotestore.ErrInvalidPath)
	}

	coll := s.db.Collection(segments[0])
	key := segments[len(segments)-1]

	if len(segments) == 1 {
		raw, err := s.collection(ctx, coll)
		if err != nil {
			return interfaces.Snapshot{}, err
		}
		return interfaces.Snapshot{Key: key, Value: raw}, nil
	}

	var doc bson.M
	err = coll.FindOne(ctx, bson.M{"_id": segments[1]}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return interfaces.Snapshot{Key: key, Value: json.RawMessage("null")}, nil
	}
	if err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("failed to find %q: %w", path, err)
	}
	delete(doc, "_id")

	var node any = map[string]interface{}(doc)
	for _, seg := range segments[2:] {
		obj, ok := asMap(node)
		if !ok {
			node = nil
			break
		}
		node = obj[seg]
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("failed to encode %q: %w", path, err)
	}
	return interfaces.Snapshot{Key: key, Value: raw}, nil
}

func (s *documentStore) collection(ctx context.Context, coll *mongo.Collection) (json.RawMessage, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make(map[string]interface{})
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		id, ok := doc["_id"].(string)
		if !ok {
			continue
		}
		delete(doc, "_id")
		docs[id] = map[string]interface{}(doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", coll.Name(), err)
	}

	if len(docs) == 0 {
		return json.RawMessage("null"), nil
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", coll.Name(), err)
	}
	return raw, nil
}

func (s *documentStore) Push(ctx context.Context, path string, value any) (string, error) {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return "", err
	}
	if len(segments) != 1 {
		return "", fmt.Errorf("%w: push to %q", remotestore.ErrInvalidPath, path)
	}

	doc, err := document(value)
	if err != nil {
		return "", err
	}

	key := s.ids.Next()
	doc["_id"] = key
	if _, err := s.db.Collection(segments[0]).InsertOne(ctx, doc); err != nil {
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
	case 0:
		return fmt.Errorf("%w: update of the root", remotestore.ErrInvalidPath)
	case 1:
		return s.replaceDocuments(ctx, s.db.Collection(segments[0]), fields)
	default:
		return s.patchDocument(ctx, s.db.Collection(segments[0]), segments[1], segments[2:], fields)
	}
}

func (s *documentStore) replaceDocuments(ctx context.Context, coll *mongo.Collection, docs map[string]any) error {
	for key, value := range docs {
		if _, err := remotestore.SplitPath(key); err != nil {
			return err
		}

		if value == nil {
			if _, err := coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
				return fmt.Errorf("failed to delete %s/%s: %w", coll.Name(), key, err)
			}
			continue
		}

		doc, err := document(value)
		if err != nil {
			return err
		}
		doc["_id"] = key
		if _, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed to replace %s/%s: %w", coll.Name(), key, err)
		}
	}
	return nil
}

func (s *documentStore) patchDocument(ctx context.Context, coll *mongo.Collection, key string, prefix []string, fields map[string]any) error {
	set := bson.M{}
	unset := bson.M{}

	for field, value := range fields {
		sub, err := remotestore.SplitPath(field)
		if err != nil || len(sub) == 0 {
			return fmt.Errorf("%w: update key %q", remotestore.ErrInvalidPath, field)
		}
		dotted := strings.Join(append(append([]string{}, prefix...), sub...), ".")

		normalized, err := remotestore.Normalize(value)
		if err != nil {
			return err
		}
		if normalized == nil {
			unset[dotted] = ""
		} else {
			set[dotted] = normalized
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(len(set) > 0)); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", coll.Name(), key, err)
	}
	return s.pruneEmpty(ctx, coll, key)
}

// pruneEmpty drops a document left with nothing but its _id
func (s *documentStore) pruneEmpty(ctx context.Context, coll *mongo.Collection, key string) error {
	var doc bson.M
	err := coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", coll.Name(), key, err)
	}
	if len(doc) > 1 {
		return nil
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to prune %s/%s: %w", coll.Name(), key, err)
	}
	return nil
}

func (s *documentStore) Remove(ctx context.Context, path string) error {
	segments, err := remotestore.SplitPath(path)
	if err != nil {
		return err
	}

	switch len(segments) {
	case 0:
		return fmt.Errorf("%w: remove of the root", remotestore.ErrInvalidPath)
	case 1:
		_, err = s.db.Collection(segments[0]).DeleteMany(ctx, bson.M{})
	case 2:
		_, err = s.db.Collection(segments[0]).DeleteOne(ctx, bson.M{"_id": segments[1]})
	default:
		coll := s.db.Collection(segments[0])
		dotted := strings.Join(segments[2:], ".")
		_, err = coll.UpdateOne(ctx, bson.M{"_id": segments[1]}, bson.M{"$unset": bson.M{dotted: ""}})
		if err == nil {
			err = s.pruneEmpty(ctx, coll, segments[1])
		}
	}
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}

func document(value any) (map[string]any, error) {
	normalized, err := remotestore.Normalize(value)
	if err != nil {
		return nil, err
	}
	doc, ok := normalized.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return doc, nil
}

func asMap(v any) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case bson.M:
		return t, true
	case bson.D:
		return t.Map(), true
	default:
		return nil, false
	}
}
