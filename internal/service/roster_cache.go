package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/config"
)

// RosterCache is a TTL-bounded redis cache for the projected student
// roster served by GET /api/students. Every student, attendance, or marks
// mutation invalidates it; the TTL caps staleness if an invalidation is
// ever missed.
//
// A nil *RosterCache is valid and behaves as a permanent miss, so services
// stay testable without redis.
type RosterCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRosterCache creates a RosterCache.
func NewRosterCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RosterCache {
	return &RosterCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "roster_cache").Logger(),
	}
}

// Get returns the cached roster JSON, or nil on a miss. Redis errors are
// logged and treated as misses; the cache never fails a read path.
func (c *RosterCache) Get(ctx context.Context) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}
	payload, err := c.rdb.Get(ctx, config.CacheKeyStudentRoster).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("roster cache read failed")
		}
		return nil
	}
	return payload
}

// Set stores the roster JSON with the configured TTL.
func (c *RosterCache) Set(ctx context.Context, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKeyStudentRoster, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("roster cache write failed")
	}
}

// Invalidate drops the cached roster.
func (c *RosterCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, config.CacheKeyStudentRoster).Err(); err != nil {
		c.log.Warn().Err(err).Msg("roster cache invalidation failed")
	}
}
