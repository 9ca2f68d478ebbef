package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix prefixes every key saved by a RedisStore.
const RedisKeyPrefix = "inventory:"

// RedisStore is a Store saving each key as a Redis string.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to the Redis server at url (redis://host:port/db)
// and checks it answers.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url %q: %w", url, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not reach redis at %q: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, prefix: RedisKeyPrefix, timeout: 5 * time.Second}, nil
}

// Close closes the connection to the server.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Load(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis key %q: %w", s.prefix+key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get redis key %q: %w", s.prefix+key, err)
	}
	return data, nil
}

func (s *RedisStore) Save(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("could not set redis key %q: %w", s.prefix+key, err)
	}
	return nil
}
