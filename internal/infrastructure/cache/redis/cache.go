package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

var (
	ErrCacheMiss           = errors.New(errors.ErrCodeNotFound, "cache miss")
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "serialization failed")
)

// Loader computes the value of a missing key.
type Loader func(ctx context.Context) (interface{}, error)

// Cache stores serialized values under prefixed keys.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// GetOrSet fills dest from the cache or, on a miss, from loader.  Concurrent
	// misses on one key share a single loader call.  hit reports whether dest
	// came from the cache.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader Loader) (hit bool, err error)
	Ping(ctx context.Context) error
	Close() error
}

type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

// ─────────────────────────────────────────────────────────────
// redis cache
// ─────────────────────────────────────────────────────────────

type redisCache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	serializer Serializer
	group      singleflight.Group
}

type CacheOption func(*redisCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *redisCache) { c.prefix = prefix }
}

func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *redisCache) { c.defaultTTL = ttl }
}

func WithSerializer(s Serializer) CacheOption {
	return func(c *redisCache) { c.serializer = s }
}

func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	c := &redisCache{
		client:     client,
		logger:     logging.OrNop(log).Named("cache"),
		prefix:     config.DefaultCachePrefix,
		defaultTTL: config.DefaultCacheTTL,
		serializer: jsonSerializer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New builds the cache described by cfg.  A disabled cache is a no-op.
func New(cfg config.CacheConfig, log logging.Logger) (Cache, error) {
	if !cfg.Enabled {
		return NewNoopCache(), nil
	}
	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	opts := []CacheOption{}
	if cfg.Prefix != "" {
		opts = append(opts, WithPrefix(cfg.Prefix))
	}
	if cfg.TTL > 0 {
		opts = append(opts, WithDefaultTTL(cfg.TTL))
	}
	return NewRedisCache(client, log, opts...), nil
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete from cache")
	}
	return nil
}

// GetOrSet treats an unreachable cache as a miss; the loader still runs and a
// failed write is only logged.
func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader Loader) (bool, error) {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return true, nil
	}
	if err != ErrCacheMiss {
		c.logger.Warn("Cache read failed, loading", logging.String("key", key), logging.Err(err))
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("Failed to set cache in GetOrSet", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return false, err
	}
	return false, copyInto(c.serializer, val, dest)
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// copyInto moves a shared loader result into the caller's destination.
func copyInto(s Serializer, val, dest interface{}) error {
	data, err := s.Marshal(val)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	if err := s.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// no-op cache
// ─────────────────────────────────────────────────────────────

type noopCache struct{}

// NewNoopCache stores nothing; every lookup misses.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string, interface{}) error                { return ErrCacheMiss }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error                       { return nil }
func (noopCache) Ping(context.Context) error                                    { return nil }
func (noopCache) Close() error                                                  { return nil }

func (noopCache) GetOrSet(ctx context.Context, _ string, dest interface{}, _ time.Duration, loader Loader) (bool, error) {
	v, err := loader(ctx)
	if err != nil {
		return false, err
	}
	return false, copyInto(jsonSerializer{}, v, dest)
}

//Personal.AI order the ending
