package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/productadvisor/backend/internal/domain"
)

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache("", "advisor:"); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	c, err := NewRedisCache("redis://127.0.0.1:6379/0", "advisor:")
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	if got := c.key("rec:heat pad"); got != "advisor:rec:heat pad" {
		t.Errorf("key() = %q, want %q", got, "advisor:rec:heat pad")
	}
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	// Port 1 is reserved; connecting is refused immediately.
	c, err := NewRedisCache("redis://127.0.0.1:1/0", "advisor:")
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("Get() error = %v, want ErrCacheUnavailable", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("Set() error = %v, want ErrCacheUnavailable", err)
	}
}
