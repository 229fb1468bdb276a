package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper gives event handlers at-most-once-per-TTL processing across
// worker replicas.
type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce tries to acquire a dedup lock for a handler + entity pair.
// It returns true on first processing, false on a duplicate. When redis is
// unavailable it returns true: processing beats silent drops.
func (d *Deduper) AcquireOnce(ctx context.Context, handler string, entityID int64) bool {
	key := fmt.Sprintf("dedup:%s:%d", handler, entityID)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release gives an acquired dedup key back. Handlers call it when
// processing fails after the acquire, so a redelivery is not mistaken for a
// duplicate and dropped.
func (d *Deduper) Release(ctx context.Context, handler string, entityID int64) {
	key := fmt.Sprintf("dedup:%s:%d", handler, entityID)
	_ = d.rdb.Del(ctx, key).Err()
}
