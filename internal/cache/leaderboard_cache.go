package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nptel-prep/quiz-service/internal/models"
)

// leaderboardTTL is short on purpose: the cache only has to absorb read
// bursts between score submissions, and submissions invalidate it anyway.
const leaderboardTTL = 30 * time.Second

// LeaderboardCache stores computed per-section leaderboards under
// leaderboard:<section>.
type LeaderboardCache struct {
	helper *CacheHelper
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{
		helper: NewCacheHelper(client, "leaderboard:"),
	}
}

func (c *LeaderboardCache) Get(ctx context.Context, section string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.helper.Get(ctx, section, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, section string, entries []models.LeaderboardEntry) error {
	return c.helper.Set(ctx, section, entries, leaderboardTTL)
}

// Invalidate drops the cached leaderboard for a section, typically in
// response to a score.updated event.
func (c *LeaderboardCache) Invalidate(ctx context.Context, section string) error {
	return c.helper.Delete(ctx, section)
}
