package vote

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// leaderboardTTL bounds staleness between invalidations, matching the
// polling cadence of leaderboard readers.
const leaderboardTTL = 30 * time.Second

// RedisCache caches ranked leaderboards in Redis. Cache failures are logged
// and treated as misses; the database remains the source of truth.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a leaderboard cache backed by the given client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func leaderboardKey(competitionID uuid.UUID) string {
	return "leaderboard:" + competitionID.String()
}

// Get returns the cached leaderboard for a competition, if present.
func (c *RedisCache) Get(ctx context.Context, competitionID uuid.UUID) (*Leaderboard, bool) {
	data, err := c.client.Get(ctx, leaderboardKey(competitionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard cache read failed")
		return nil, false
	}

	var board Leaderboard
	if err := json.Unmarshal(data, &board); err != nil {
		log.Warn().Err(err).Msg("leaderboard cache decode failed")
		return nil, false
	}
	return &board, true
}

// Set stores a leaderboard with a short TTL.
func (c *RedisCache) Set(ctx context.Context, board *Leaderboard) {
	data, err := json.Marshal(board)
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard cache encode failed")
		return
	}
	if err := c.client.Set(ctx, leaderboardKey(board.CompetitionID), data, leaderboardTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("leaderboard cache write failed")
	}
}

// Invalidate drops the cached leaderboard after a vote changes the tallies.
func (c *RedisCache) Invalidate(ctx context.Context, competitionID uuid.UUID) {
	if err := c.client.Del(ctx, leaderboardKey(competitionID)).Err(); err != nil {
		log.Warn().Err(err).Msg("leaderboard cache invalidate failed")
	}
}
