// Package cache holds the response caches used by the recommendation service.
package cache

import (
	"fmt"
	"time"

	"github.com/productadvisor/backend/internal/domain"
)

// Cache types accepted by Open
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeNone   = "none"
)

// Cache is a CacheRepository that owns resources released by Close
type Cache interface {
	domain.CacheRepository
	Close() error
}

// Open builds the cache selected by cacheType. TypeNone returns a nil Cache.
func Open(cacheType, redisURL string) (Cache, error) {
	switch cacheType {
	case TypeMemory:
		return NewMemoryCache(10 * time.Minute), nil
	case TypeRedis:
		return NewRedisCache(redisURL, "product-advisor:")
	case TypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cacheType)
	}
}
