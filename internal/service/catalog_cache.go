package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

const (
	catalogCacheKey     = "catalog:all"
	catalogCachePattern = "catalog:*"

	defaultCatalogTTL = 15 * time.Minute
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// catalogEntry is the cached payload; StoredAt lets operators spot stale entries.
type catalogEntry struct {
	StoredAt time.Time        `json:"stored_at"`
	Colleges []models.College `json:"colleges"`
}

// CatalogCache keeps a snapshot of the full college catalog in a shared store.
// A nil *CatalogCache is valid and never hits.
type CatalogCache struct {
	store   cacheStore
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCatalogCache wraps store. It returns nil when store is nil.
func NewCatalogCache(store cacheStore, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if store == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogCache{store: store, metrics: metrics, ttl: ttl, logger: logger}
}

// Load returns the cached catalog. A miss is (nil, false, nil); backend
// failures are returned so callers can fall back to the source.
func (c *CatalogCache) Load(ctx context.Context) ([]models.College, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	var entry catalogEntry
	start := time.Now()
	err := c.store.Get(ctx, catalogCacheKey, &entry)
	c.metrics.RecordCacheOperation(err == nil, time.Since(start))
	switch {
	case err == nil:
		return entry.Colleges, true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

// Store replaces the cached catalog.
func (c *CatalogCache) Store(ctx context.Context, colleges []models.College) error {
	if c == nil {
		return nil
	}
	start := time.Now()
	err := c.store.Set(ctx, catalogCacheKey, catalogEntry{StoredAt: time.Now().UTC(), Colleges: colleges}, c.ttl)
	c.metrics.ObserveCacheWrite(time.Since(start))
	return err
}

// Invalidate drops every catalog key.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.store.DeleteByPattern(ctx, catalogCachePattern); err != nil {
		return err
	}
	c.logger.Debug("catalog cache invalidated")
	return nil
}
