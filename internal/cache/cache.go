package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"

	"mjlog/internal/config"
	"mjlog/internal/constants"
	"mjlog/internal/domain"
)

// GameCache keeps recently served games in memory, keyed by stored id. Each
// game costs 1, so the capacity is a game count.
type GameCache struct {
	cache  *ristretto.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*GameCache, error) {
	return NewWithTTL(constants.CacheMaxCost, cfg.CacheTTL, logger)
}

func NewWithTTL(maxCost int64, ttl time.Duration, logger zerolog.Logger) (*GameCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game cache: %w", err)
	}

	return &GameCache{
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

func (c *GameCache) Get(id string) (*domain.StoredGame, bool) {
	value, ok := c.cache.Get(id)
	if !ok {
		return nil, false
	}
	game, ok := value.(*domain.StoredGame)
	return game, ok
}

// Set admits the game asynchronously; it may be dropped under contention.
func (c *GameCache) Set(game *domain.StoredGame) bool {
	ok := c.cache.SetWithTTL(game.ID, game, 1, c.ttl)
	if !ok {
		c.logger.Debug().Str("id", game.ID).Msg("game dropped by cache")
	}
	return ok
}

func (c *GameCache) Delete(id string) {
	c.cache.Del(id)
}

// Wait blocks until buffered writes are applied.
func (c *GameCache) Wait() {
	c.cache.Wait()
}

func (c *GameCache) Close() {
	c.cache.Close()
}
