package domain

import "errors"

var (
	// ErrInvalidQuery is returned when a recommendation query is empty or whitespace
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrRemoteUnavailable is returned when no credential or endpoint is configured
	ErrRemoteUnavailable = errors.New("remote recommendation service not configured")

	// ErrRemoteError is returned on transport failures or non-success responses
	ErrRemoteError = errors.New("remote recommendation request failed")

	// ErrParseError is returned when a remote payload has no recognizable structure
	ErrParseError = errors.New("unable to parse remote recommendation response")

	// ErrRateLimited is returned when the client-side rate limiter rejects a call
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidCatalog is returned when catalog data fails validation
	ErrInvalidCatalog = errors.New("invalid catalog data")

	// ErrEmptyCatalog is returned by aggregate operations over no products
	ErrEmptyCatalog = errors.New("product list is empty")

	// ErrInvalidSortKey is returned for an unknown sort key
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrKeyNotFound is returned when a key-value store has no value for a key
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
