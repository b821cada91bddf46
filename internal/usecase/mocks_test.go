package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/productadvisor/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockTextGenerator is a mock implementation of domain.TextGenerator
type MockTextGenerator struct {
	text       string
	err        error
	calls      int
	lastPrompt string
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// MockRecommendationClient is a mock implementation of domain.RecommendationClient
type MockRecommendationClient struct {
	recs  []domain.Recommendation
	err   error
	calls int
	// block waits for the context to end before returning
	block bool
}

func (m *MockRecommendationClient) FetchRecommendations(
	ctx context.Context,
	query string,
	catalog []domain.Product,
) ([]domain.Recommendation, error) {
	m.calls++
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

// MockKeyValueStore is a mock implementation of domain.KeyValueStore
type MockKeyValueStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	sets     int
}

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{data: make(map[string][]byte)}
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	value, ok := m.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return value, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockKeyValueStore) Close() error {
	return nil
}
