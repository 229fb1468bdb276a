package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

// CacheKeyOverview caches the accounts overview, the heaviest report.
const CacheKeyOverview = "reports:overview"

// ReportCache is a TTL cache for assembled reports. A nil cache is valid
// and disables caching; redis failures degrade to a recompute, never an
// error.
type ReportCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewReportCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get loads a cached report into dest. It returns false on miss or any
// redis/decoding problem.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		metrics.IncrementReportCache("miss")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("Discarding undecodable cached report", zap.String("key", key), zap.Error(err))
		metrics.IncrementReportCache("miss")
		return false
	}
	metrics.IncrementReportCache("hit")
	return true
}

// Set stores a report under key for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode report for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops cached reports after a write.
func (c *ReportCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate report cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
