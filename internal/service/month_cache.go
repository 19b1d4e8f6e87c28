package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const monthCachePrefix = "month_data:"

// MonthCache is a cache-aside layer over the assembled month documents. Every
// month-scoped write (signup creation, the sample-data reset) invalidates its
// month's entry, so a stale read can at worst hide a brand-new signup for one
// TTL. A nil Redis client disables caching entirely, and Redis errors degrade
// to direct reads.
type MonthCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewMonthCache creates a MonthCache. rdb may be nil to disable caching.
func NewMonthCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *MonthCache {
	return &MonthCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "month_cache").Logger(),
	}
}

// Get returns the cached document for a month, if present.
func (c *MonthCache) Get(ctx context.Context, key string) (*MonthDocument, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, monthCachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("month", key).Msg("cache read failed")
		}
		return nil, false
	}
	var doc MonthDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.log.Warn().Err(err).Str("month", key).Msg("cache entry corrupt, dropping")
		c.Invalidate(ctx, key)
		return nil, false
	}
	return &doc, true
}

// Set stores the assembled document for a month. Best effort.
func (c *MonthCache) Set(ctx context.Context, key string, doc *MonthDocument) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		c.log.Warn().Err(err).Str("month", key).Msg("cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, monthCachePrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("month", key).Msg("cache write failed")
	}
}

// Invalidate drops a month's cached document. Best effort.
func (c *MonthCache) Invalidate(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, monthCachePrefix+key).Err(); err != nil {
		c.log.Warn().Err(err).Str("month", key).Msg("cache invalidation failed")
	}
}

// InvalidateAll drops every month's cached document. Used by the sample-data
// reset, which deletes rows in every month scope, not just the current one.
// Best effort.
func (c *MonthCache) InvalidateAll(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, monthCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache scan failed")
	}
}
