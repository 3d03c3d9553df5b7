package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

// OpenStore connects the snapshot backend selected by c.Store.
func OpenStore(ctx context.Context, c *Config) (snapshot.Store, error) {
	var (
		store snapshot.Store
		err   error
	)
	switch c.Store {
	case StoreMongo:
		store, err = openMongo(ctx, c)
	case StoreRedis:
		store, err = openRedis(ctx, c)
	case StoreSQLite:
		store, err = openSQLite(ctx, c)
	case StoreFile:
		store, err = openFile(c)
	case StoreMemory:
		store = snapshot.NewMemoryStore()
	default:
		err = fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func openMongo(ctx context.Context, c *Config) (snapshot.Store, error) {
	s, err := snapshot.NewMongoStore(ctx, snapshot.MongoConfig{
		URI:        c.MongoURI,
		Database:   c.MongoDatabase,
		Collection: c.Collection,
		Document:   c.Document,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openRedis(ctx context.Context, c *Config) (snapshot.Store, error) {
	s, err := snapshot.NewRedisStore(ctx, snapshot.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Key:      c.Collection + ":" + c.Document,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openSQLite(ctx context.Context, c *Config) (snapshot.Store, error) {
	s, err := snapshot.OpenSQLiteStore(ctx, c.SQLitePath, c.Document)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openFile(c *Config) (snapshot.Store, error) {
	s, err := snapshot.NewFileStore(filepath.Join(c.FileDir, c.Collection), c.Document)
	if err != nil {
		return nil, err
	}
	return s, nil
}
