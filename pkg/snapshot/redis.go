package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig locates the snapshot key in Redis.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	Key      string // default: DefaultCollection + ":" + DefaultDocument
}

// RedisStore keeps the snapshot as a JSON string under one key.
// The key has no expiry; freshness is decided by the snapshot timestamp.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Key == "" {
		cfg.Key = DefaultCollection + ":" + DefaultDocument
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, key: cfg.Key}, nil
}

// Get reads and decodes the snapshot value.
func (r *RedisStore) Get(ctx context.Context) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", ErrCorrupt, err)
	}
	return &s, nil
}

// Set overwrites the snapshot value.
func (r *RedisStore) Set(ctx context.Context, s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot key.
func (r *RedisStore) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
