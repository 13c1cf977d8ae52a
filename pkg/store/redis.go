package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/dctree/pkg/errors"
)

// RedisStore keeps entries in Redis. Expiry is handled by Redis itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at addr and checks that it
// answers.
func NewRedisStore(ctx context.Context, addr string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "redis store needs an address")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a value. A missing key is a miss, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, key).Bytes()
		if stderrors.Is(err, redis.Nil) {
			data, found = nil, false
			return nil
		}
		found = err == nil
		return transient(err)
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "redis get %s", key)
	}
	return data, found, nil
}

// Set stores a value with an optional expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		return transient(s.client.Set(ctx, key, data, ttl).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis set %s", key)
	}
	return nil
}

// Delete removes a value.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis del %s", key)
	}
	return nil
}

// Close closes the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
