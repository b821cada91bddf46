package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// KeyValueStore is a durable store of whole values under string keys.
// Set must replace the value atomically: a failed Set leaves the previous value intact.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TextGenerator sends a prompt to a text-generation service and returns the generated text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResponseParser turns raw generated text into recommendations.
// Implementations must accept only a JSON array of recommendation objects,
// resolve product ids against catalog and drop unresolvable entries.
type ResponseParser interface {
	Parse(raw string, catalog []Product) ([]Recommendation, error)
}

// RecommendationClient produces recommendations from a remote backend
type RecommendationClient interface {
	FetchRecommendations(ctx context.Context, query string, catalog []Product) ([]Recommendation, error)
}

// CatalogReader gives read-only access to the product catalog
type CatalogReader interface {
	Products() []Product
	Get(id int) (Product, error)
}
