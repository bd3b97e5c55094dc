package events

import (
	"context"
	"encoding/json"

	"github.com/nptel-prep/quiz-service/internal/cache"
	"github.com/nptel-prep/quiz-service/internal/utils"
)

// StartLeaderboardInvalidator subscribes to score.updated and drops the
// cached leaderboard of the affected section. Runs until ctx is cancelled or
// the bus closes.
func StartLeaderboardInvalidator(ctx context.Context, bus *Bus, lbCache *cache.LeaderboardCache, log utils.Logger) error {
	messages, err := bus.SubscribeScoreUpdated(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var event ScoreUpdated
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				log.Error("malformed score event", "error", err)
				msg.Ack()
				continue
			}

			if err := lbCache.Invalidate(ctx, event.Section); err != nil {
				log.Error("leaderboard cache invalidation failed",
					"section", event.Section, "error", err)
			}
			msg.Ack()
		}
	}()

	return nil
}
