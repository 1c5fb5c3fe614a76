package session

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/unifiedui/docsession/internal/core/cache"
	"github.com/unifiedui/docsession/internal/domain/models"
)

// DefaultCacheTTL is used when Config.CacheTTL is zero.
const DefaultCacheTTL = time.Minute

// documentCache is a read-through cache for FindOneByField results.
// Cache failures are logged and never fail the calling operation.
type documentCache struct {
	client cache.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func newDocumentCache(client cache.Client, ttl time.Duration, logger zerolog.Logger) *documentCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &documentCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// get returns the cached document or nil on a miss.
func (c *documentCache) get(ctx context.Context, t target, field string, value interface{}) models.Document {
	key := buildCacheKey(t, field, value)

	raw, err := c.client.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil
	}
	if raw == nil {
		return nil
	}

	var doc models.Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		// Corrupted entry, drop it and read through
		_, _ = c.client.Delete(ctx, key)
		return nil
	}
	return doc
}

func (c *documentCache) set(ctx context.Context, t target, field string, value interface{}, doc models.Document) {
	key := buildCacheKey(t, field, value)

	raw, err := bson.Marshal(doc)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cannot encode document for cache")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// invalidate drops every cached lookup of the target collection.
func (c *documentCache) invalidate(ctx context.Context, t target) {
	pattern := targetKey(t) + ":*"
	if _, err := c.client.DeletePattern(ctx, pattern); err != nil {
		c.logger.Warn().Err(err).Str("pattern", pattern).Msg("cache invalidation failed")
	}
}

// buildCacheKey keys a lookup by target, field and typed value.
func buildCacheKey(t target, field string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%T:%v", targetKey(t), url.QueryEscape(field), value, value)
}

// targetKey escapes the names so that ':' cannot merge two targets and glob
// characters cannot leak into the invalidation pattern. Escaped output only
// holds letters, digits, "-_.~", '%' and '+'.
func targetKey(t target) string {
	return url.QueryEscape(t.database) + ":" + url.QueryEscape(t.collection)
}
