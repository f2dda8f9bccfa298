package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"frigo-service/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps each entry under a prefixed Redis string key.
// Redis has no insertion order, so Keys returns keys sorted lexically.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects to Redis. Unlike a cache, a store that cannot be
// reached is an error: there is no in-memory fallback.
func NewRedisStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis store initialized successfully",
		zap.String("host", cfg.RedisHost),
		zap.String("port", cfg.RedisPort),
		zap.Int("db", cfg.RedisDB),
		zap.String("prefix", cfg.RedisKeyPrefix),
	)

	return newRedisStore(rdb, cfg.RedisKeyPrefix, logger), nil
}

func newRedisStore(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	keys := make([]string, 0)

	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}

	if err := iter.Err(); err != nil {
		s.logger.Warn("Redis Scan error", zap.String("prefix", s.prefix), zap.Error(err))
		return nil, fmt.Errorf("redis scan error: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Warn("Redis Get error", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("redis get error: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		s.logger.Warn("Redis Set error", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		s.logger.Warn("Redis Delete error", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

func (s *RedisStore) MultiGet(ctx context.Context, keys []string) ([]Entry, error) {
	if len(keys) == 0 {
		return []Entry{}, nil
	}

	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = s.redisKey(key)
	}

	vals, err := s.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		s.logger.Warn("Redis MGet error", zap.Int("keys", len(keys)), zap.Error(err))
		return nil, fmt.Errorf("redis mget error: %w", err)
	}

	values := make(map[string]string, len(keys))
	for i, v := range vals {
		// nil marks a key deleted since Keys was called
		if str, ok := v.(string); ok {
			values[keys[i]] = str
		}
	}
	return orderEntries(keys, values), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
