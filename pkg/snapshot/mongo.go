package snapshot

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig locates the snapshot document in MongoDB.
type MongoConfig struct {
	URI        string // Connection string (mongodb://...)
	Database   string // Database name
	Collection string // Collection name (default: DefaultCollection)
	Document   string // Document _id (default: DefaultDocument)
}

// MongoStore keeps the snapshot as a single document keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	id     string
}

type mongoDocument struct {
	ID       string `bson:"_id"`
	Snapshot `bson:",inline"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Document == "" {
		cfg.Document = DefaultDocument
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		id:     cfg.Document,
	}, nil
}

// Get loads the snapshot document.
func (m *MongoStore) Get(ctx context.Context) (*Snapshot, error) {
	raw, err := m.coll.FindOne(ctx, bson.M{"_id": m.id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}

	var doc mongoDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", ErrCorrupt, err)
	}
	return &doc.Snapshot, nil
}

// Set replaces the snapshot document, inserting it if absent.
func (m *MongoStore) Set(ctx context.Context, s *Snapshot) error {
	doc := mongoDocument{ID: m.id, Snapshot: *s}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": m.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot document.
func (m *MongoStore) Delete(ctx context.Context) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": m.id}); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
