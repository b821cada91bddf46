package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/productadvisor/backend/config"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/productadvisor/backend/internal/infrastructure/cache"
	"github.com/productadvisor/backend/internal/infrastructure/catalog"
	"github.com/productadvisor/backend/internal/infrastructure/gemini"
	"github.com/productadvisor/backend/internal/infrastructure/storage"
	"github.com/productadvisor/backend/internal/usecase"
	"github.com/rs/zerolog/log"
)

// app holds the wired dependencies shared by the commands
type app struct {
	catalog         *catalog.Catalog
	store           domain.KeyValueStore
	cache           cache.Cache
	favorites       *usecase.FavoritesService
	recommendations *usecase.RecommendationService
}

// newApp wires infrastructure and usecases from cfg
func newApp(cfg *config.Config) (*app, error) {
	products, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	store, err := storage.Open(cfg.Favorites.Backend, cfg.Favorites.Path)
	if err != nil {
		return nil, fmt.Errorf("open favorites store: %w", err)
	}

	responseCache, err := cache.Open(cfg.Cache.Type, cfg.Cache.RedisURL)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}

	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:            cfg.Gemini.APIKey,
		BaseURL:           cfg.Gemini.BaseURL,
		Model:             cfg.Gemini.Model,
		Timeout:           cfg.Gemini.Timeout,
		MaxRetries:        cfg.Gemini.MaxRetries,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		geminiClient.SetDebug(true)
	}
	if !geminiClient.Configured() {
		log.Info().Msg("no Gemini API key configured, recommendations use the keyword heuristic")
	}

	var cacheRepo domain.CacheRepository
	if responseCache != nil {
		cacheRepo = responseCache
	}

	a := &app{
		catalog:   products,
		store:     store,
		cache:     responseCache,
		favorites: usecase.NewFavoritesService(store),
		recommendations: usecase.NewRecommendationService(
			products,
			usecase.NewRemoteRecommender(geminiClient, usecase.NewJSONArrayParser()),
			cacheRepo,
			usecase.RecommendationServiceConfig{
				CacheTTL: cfg.Cache.TTL,
				// covers every retry of one call
				RemoteTimeout: cfg.Gemini.Timeout * time.Duration(cfg.Gemini.MaxRetries+1),
			},
		),
	}

	log.Debug().
		Int("products", products.Len()).
		Str("favorites_backend", cfg.Favorites.Backend).
		Str("cache", cfg.Cache.Type).
		Msg("application wired")

	return a, nil
}

// Close releases the store and cache
func (a *app) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
