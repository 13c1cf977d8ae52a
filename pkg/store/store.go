// Package store provides key-value backends for persisted D&C trees.
//
// A [Store] maps string keys to opaque byte payloads. The treeio package
// encodes trees into those payloads; this package only moves bytes.
//
// # Backends
//
//   - [FileStore]: hashed file layout under a local directory (the default)
//   - [RedisStore]: a Redis server, using native key expiry
//   - [MongoStore]: one document per key in a MongoDB collection
//   - [NullStore]: never stores anything
//
// Use [Open] to create the backend selected by [Options].
package store

import (
	"context"
	"time"

	"github.com/matzehuels/dctree/pkg/errors"
)

// Store is a key-value store for encoded trees.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero stores
// the entry without expiry. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend string `toml:"backend"`

	Dir string `toml:"dir"`

	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Open creates the backend named by opts.Backend. An empty backend selects
// the file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		s, err := NewRedisStore(ctx, opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendNone:
		return NewNullStore(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", opts.Backend)
	}
}

// Name returns the backend name of s, for logs and metrics.
func Name(s Store) string {
	switch s.(type) {
	case *FileStore:
		return BackendFile
	case *RedisStore:
		return BackendRedis
	case *MongoStore:
		return BackendMongo
	case *NullStore:
		return BackendNone
	default:
		return "custom"
	}
}
