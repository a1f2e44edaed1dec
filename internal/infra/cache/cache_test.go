package cache_test

import (
	"testing"
	"time"

	"github.com/rmartins/grana-bff-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("ledger-state:user-1", "snapshot")
	val, ok := c.Get("ledger-state:user-1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "snapshot" {
		t.Errorf("expected 'snapshot', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("ledger-state:nobody")
	if ok {
		t.Fatal("expected cache miss for unknown key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("ledger-state:user-1", "snapshot")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("ledger-state:user-1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("ledger-state:user-1", "snapshot")
	c.Delete("ledger-state:user-1")

	_, ok := c.Get("ledger-state:user-1")
	if ok {
		t.Fatal("expected key to be deleted after invalidation")
	}
}
