package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RecommendationServiceConfig holds configuration for the ranking engine
type RecommendationServiceConfig struct {
	CacheTTL      time.Duration
	RemoteTimeout time.Duration
}

// RecommendationService ranks catalog products for a free-text query.
// It prefers the remote client and falls back to the heuristic scorer on any remote failure.
type RecommendationService struct {
	catalog       domain.CatalogReader
	remote        domain.RecommendationClient
	cache         domain.CacheRepository
	heuristic     *HeuristicScorer
	cacheTTL      time.Duration
	remoteTimeout time.Duration
	logger        zerolog.Logger
}

// NewRecommendationService creates the ranking engine. remote and cache may be nil.
func NewRecommendationService(
	catalog domain.CatalogReader,
	remote domain.RecommendationClient,
	cache domain.CacheRepository,
	config RecommendationServiceConfig,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	remoteTimeout := config.RemoteTimeout
	if remoteTimeout == 0 {
		remoteTimeout = 30 * time.Second
	}

	return &RecommendationService{
		catalog:       catalog,
		remote:        remote,
		cache:         cache,
		heuristic:     NewHeuristicScorer(),
		cacheTTL:      cacheTTL,
		remoteTimeout: remoteTimeout,
		logger:        log.With().Str("component", "recommendations").Logger(),
	}
}

// Recommend returns up to five recommendations, best first.
// Flow: validate -> cache -> remote -> heuristic fallback.
// The only error returned is domain.ErrInvalidQuery.
func (s *RecommendationService) Recommend(ctx context.Context, query string) (*domain.RecommendationResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	products := s.catalog.Products()
	cacheKey := generateCacheKey(query)

	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		s.logger.Debug().Str("query", query).Msg("serving cached recommendations")
		return &domain.RecommendationResult{Query: query, Source: domain.SourceAI, Recommendations: cached}, nil
	}

	recs, err := s.fetchRemote(ctx, query, products)
	if err == nil && len(recs) > 0 {
		recs = rankRecommendations(orderByCatalog(recs, products))
		s.setInCache(ctx, cacheKey, recs)
		return &domain.RecommendationResult{Query: query, Source: domain.SourceAI, Recommendations: recs}, nil
	}

	switch {
	case err == nil:
		s.logger.Warn().Str("query", query).Msg("remote returned no catalog products, using heuristic")
	case errors.Is(err, domain.ErrRemoteUnavailable):
		s.logger.Debug().Msg("remote recommendations not configured, using heuristic")
	default:
		s.logger.Warn().Err(err).Str("query", query).Msg("remote recommendations failed, using heuristic")
	}

	return &domain.RecommendationResult{
		Query:           query,
		Source:          domain.SourceHeuristic,
		Recommendations: s.heuristic.Recommend(query, products),
	}, nil
}

// fetchRemote calls the remote client under its own deadline
func (s *RecommendationService) fetchRemote(ctx context.Context, query string, products []domain.Product) ([]domain.Recommendation, error) {
	if s.remote == nil {
		return nil, domain.ErrRemoteUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	recs, err := s.remote.FetchRecommendations(ctx, query, products)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, domain.ErrRemoteError) {
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteError, err)
		}
		return nil, err
	}
	return recs, nil
}

// orderByCatalog sorts recommendations into catalog order so that ranking ties keep it
func orderByCatalog(recs []domain.Recommendation, products []domain.Product) []domain.Recommendation {
	position := make(map[int]int, len(products))
	for i, p := range products {
		position[p.ID] = i
	}
	slices.SortStableFunc(recs, func(a, b domain.Recommendation) int {
		return position[a.Product.ID] - position[b.Product.ID]
	})
	return recs
}

// generateCacheKey creates a normalized cache key: "recommendations:{lower-cased, collapsed query}"
func generateCacheKey(query string) string {
	return "recommendations:" + strings.ToLower(NormalizeQuery(query))
}

func (s *RecommendationService) getFromCache(ctx context.Context, key string) ([]domain.Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return recs, len(recs) > 0
}

func (s *RecommendationService) setInCache(ctx context.Context, key string, recs []domain.Recommendation) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(recs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("encode recommendations for cache")
		return
	}
	// Log but don't fail if caching fails
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("cache write failed")
	}
}
