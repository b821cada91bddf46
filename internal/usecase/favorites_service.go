package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FavoritesKey is the key holding the serialized favorites list
const FavoritesKey = "favorites"

// FavoritesService persists favorite product snapshots as one JSON array.
// Storage failures are logged and swallowed: reads return empty/false,
// mutations become no-ops and never overwrite data they could not read.
type FavoritesService struct {
	store  domain.KeyValueStore
	mutex  sync.Mutex
	logger zerolog.Logger
}

// NewFavoritesService creates a favorites service over store
func NewFavoritesService(store domain.KeyValueStore) *FavoritesService {
	return &FavoritesService{
		store:  store,
		logger: log.With().Str("component", "favorites").Logger(),
	}
}

// GetAll returns favorites in insertion order
func (s *FavoritesService) GetAll(ctx context.Context) []domain.Product {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("loading favorites")
		return []domain.Product{}
	}
	return favorites
}

// Add stores a snapshot of product unless its id is already a favorite
func (s *FavoritesService) Add(ctx context.Context, product domain.Product) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", product.ID).Msg("adding favorite")
		return
	}
	if indexOf(favorites, product.ID) >= 0 {
		return
	}

	if err := s.save(ctx, append(favorites, product)); err != nil {
		s.logger.Error().Err(err).Int("product_id", product.ID).Msg("adding favorite")
	}
}

// Remove deletes the favorite with id; a missing id is a no-op
func (s *FavoritesService) Remove(ctx context.Context, id int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("removing favorite")
		return
	}

	i := indexOf(favorites, id)
	if i < 0 {
		return
	}
	if err := s.save(ctx, slices.Delete(favorites, i, i+1)); err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("removing favorite")
	}
}

// Contains reports whether id is a favorite
func (s *FavoritesService) Contains(ctx context.Context, id int) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("checking favorite status")
		return false
	}
	return indexOf(favorites, id) >= 0
}

// Toggle removes product if it is a favorite and adds it otherwise.
// It returns the resulting state; on storage failure the state before the call.
func (s *FavoritesService) Toggle(ctx context.Context, product domain.Product) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", product.ID).Msg("toggling favorite")
		return false
	}

	if i := indexOf(favorites, product.ID); i >= 0 {
		if err := s.save(ctx, slices.Delete(favorites, i, i+1)); err != nil {
			s.logger.Error().Err(err).Int("product_id", product.ID).Msg("toggling favorite")
			return true
		}
		return false
	}

	if err := s.save(ctx, append(favorites, product)); err != nil {
		s.logger.Error().Err(err).Int("product_id", product.ID).Msg("toggling favorite")
		return false
	}
	return true
}

// Clear persists an empty favorites list
func (s *FavoritesService) Clear(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.save(ctx, []domain.Product{}); err != nil {
		s.logger.Error().Err(err).Msg("clearing favorites")
	}
}

// Count returns the number of favorites
func (s *FavoritesService) Count(ctx context.Context) int {
	return len(s.GetAll(ctx))
}

func (s *FavoritesService) load(ctx context.Context) ([]domain.Product, error) {
	data, err := s.store.Get(ctx, FavoritesKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	var favorites []domain.Product
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if favorites == nil {
		favorites = []domain.Product{}
	}
	return favorites, nil
}

func (s *FavoritesService) save(ctx context.Context, favorites []domain.Product) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	return s.store.Set(ctx, FavoritesKey, data)
}

func indexOf(products []domain.Product, id int) int {
	return slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
}
