package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mjlog/internal/domain"
)

func newCache(t *testing.T, ttl time.Duration) *GameCache {
	t.Helper()
	c, err := NewWithTTL(100, ttl, zerolog.Nop())
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestGameCacheSetGet(t *testing.T) {
	c := newCache(t, time.Minute)
	game := &domain.StoredGame{ID: "abc", Source: "log", Game: &domain.Game{Type: "169"}}

	if !c.Set(game) {
		t.Fatal("expected set to be accepted")
	}
	c.Wait()

	got, ok := c.Get("abc")
	if !ok {
		t.Fatal("expected cached game")
	}
	if got != game {
		t.Fatalf("expected same game pointer, got %+v", got)
	}

	c.Delete("abc")
	if _, ok := c.Get("abc"); ok {
		t.Fatal("expected game to be deleted")
	}
}

func TestGameCacheMiss(t *testing.T) {
	c := newCache(t, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss")
	}
}

func TestGameCacheExpiry(t *testing.T) {
	c := newCache(t, 50*time.Millisecond)
	c.Set(&domain.StoredGame{ID: "abc"})
	c.Wait()

	time.Sleep(100 * time.Millisecond)
	if _, ok := c.Get("abc"); ok {
		t.Fatal("expected game to expire")
	}
}
