package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce tries to acquire a dedup lock for a user's action on one
// business date.
// returns true if this is the FIRST time
// returns false if it's a duplicate
func (d *Deduper) AcquireOnce(ctx context.Context, action string, userID int, date string) bool {
	key := fmt.Sprintf("dedup:%s:%d:%s", action, userID, date)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		// Redis down? Fail open, the store's own per-date flag still guards.
		return true
	}
	return ok
}
