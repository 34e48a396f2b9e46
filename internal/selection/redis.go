package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps selection values in Redis under a per-user namespace,
// so the same selection follows a user across machines.
type RedisStorage struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStorage wraps an existing client. Keys are stored as
// "<namespace>:<key>".
func NewRedisStorage(rdb *redis.Client, namespace string) *RedisStorage {
	return &RedisStorage{rdb: rdb, namespace: namespace}
}

// OpenRedis connects to the Redis server at url and checks connectivity.
func OpenRedis(ctx context.Context, url, namespace string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("selection: invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("selection: connect to redis: %w", err)
	}

	return NewRedisStorage(rdb, namespace), nil
}

func (s *RedisStorage) key(k string) string {
	return s.namespace + ":" + k
}

// Get implements Storage.
func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Storage. Values never expire.
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete implements Storage.
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
