package cache

import (
	"context"
	"time"

	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when the configuration does not set one
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
}

// NewInMemoryCache creates a process local cache whose entries expire after
// the workflow dedupe ttl
func NewInMemoryCache(cfg *config.Configuration, log *logger.Logger) Cache {
	expiration := DefaultExpiration
	if cfg != nil && cfg.Workflow.DedupeTTL > 0 {
		expiration = cfg.Workflow.DedupeTTL
	}

	log.Debugw("initializing in-memory cache", "default_expiration", expiration)

	return &InMemoryCache{
		cache: goCache.New(expiration, DefaultCleanupInterval),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}
