package cache

import (
	"context"
	"encoding/json"
	"time"

	"codebreak/internal/domain"
	"codebreak/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:v1"

// LeaderboardCache keeps the serialized leaderboard in redis for a short
// TTL so listing traffic does not hammer the store. Every method is safe on
// a nil receiver or nil client and fails open: a cache problem never breaks
// a request, the caller just reads the store.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and returns a working cache, or nil when addr is
// empty or the server is unreachable.
func New(addr, password string, db int, ttl time.Duration) *LeaderboardCache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, leaderboard cache disabled", "error", err)
		return nil
	}

	logger.Info("redis connected", "addr", addr)
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// Client exposes the underlying redis client for other consumers (the rate
// limiting middleware shares the connection). Nil when caching is off.
func (c *LeaderboardCache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []domain.LeaderboardEntry) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, leaderboardKey, raw, c.ttl).Err(); err != nil {
		logger.Warn("leaderboard cache write failed", "error", err)
	}
}

// Invalidate drops the cached listing after a score change so a solve is
// visible on the next read instead of after the TTL.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, leaderboardKey).Err(); err != nil {
		logger.Warn("leaderboard cache invalidation failed", "error", err)
	}
}
