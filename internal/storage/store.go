package storage

import (
	"context"
	"fmt"
	"strings"

	"frigo-service/internal/config"

	"go.uber.org/zap"
)

// Store is the key-value persistence used by the inventory repository.
// Keys are opaque strings and values are UTF-8 text. There are no
// transactions: every call is applied on its own.
type Store interface {
	// Keys returns every key in storage order
	Keys(ctx context.Context) ([]string, error)
	// Get returns the value for key, or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// MultiGet returns the entries for keys in the order requested.
	// Keys that no longer exist are left out.
	MultiGet(ctx context.Context, keys []string) ([]Entry, error)
	// Close releases the underlying connection
	Close() error
}

// Entry is a key with its stored value
type Entry struct {
	Key   string
	Value string
}

// Backend names accepted by NewStore
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// NewStore opens the backend selected in the configuration
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	switch backend {
	case BackendSQLite, "":
		logger.Info("Opening SQLite store", zap.String("path", cfg.SQLitePath))
		store, err := NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		logger.Info("Opening Redis store",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Int("db", cfg.RedisDB),
		)
		store, err := NewRedisStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendPostgres:
		logger.Info("Opening PostgreSQL store")
		store, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		logger.Warn("Using in-memory store, records are lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// orderEntries arranges fetched values in the order of keys, dropping
// keys with no value
func orderEntries(keys []string, values map[string]string) []Entry {
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		if value, ok := values[key]; ok {
			entries = append(entries, Entry{Key: key, Value: value})
		}
	}
	return entries
}

var (
	ErrKeyNotFound = fmt.Errorf("key not found")
)
