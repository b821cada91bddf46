package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/productadvisor/backend/internal/domain"
)

// RedisCache is a CacheRepository backed by a redis connection pool
type RedisCache struct {
	pool   *redis.Pool
	prefix string
}

// NewRedisCache creates a cache for the redis server at rawURL (redis://host:port/db).
// Keys are namespaced with prefix.
func NewRedisCache(rawURL, prefix string) (*RedisCache, error) {
	if rawURL == "" {
		return nil, errors.New("redis URL is required")
	}

	pool := &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 5 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialURLContext(ctx, rawURL,
				redis.DialConnectTimeout(2*time.Second),
				redis.DialReadTimeout(2*time.Second),
				redis.DialWriteTimeout(2*time.Second),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	return &RedisCache{pool: pool, prefix: prefix}, nil
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache) conn(ctx context.Context) (redis.Conn, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return conn, nil
}

// Get retrieves a value from redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	value, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", c.key(key)))
	if errors.Is(err, redis.ErrNil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return value, nil
}

// Set stores value with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	conn, err := c.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	ms := ttl.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	if _, err := redis.DoContext(conn, ctx, "SET", c.key(key), value, "PX", ms); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes a key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	conn, err := c.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := redis.DoContext(conn, ctx, "DEL", c.key(key)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Exists reports whether key is present
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	conn, err := c.conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	exists, err := redis.Bool(redis.DoContext(conn, ctx, "EXISTS", c.key(key)))
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return exists, nil
}

// Close releases pooled connections
func (c *RedisCache) Close() error {
	return c.pool.Close()
}
