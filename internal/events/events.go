package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicScoreUpdated carries one event per accepted best-score update.
const TopicScoreUpdated = "score.updated"

// ScoreUpdated is published whenever a submission raises a user's best score
// for a section.
type ScoreUpdated struct {
	Username string `json:"username"`
	Section  string `json:"section"`
	Score    int    `json:"score"`
}

// Bus is an in-process publish/subscribe bus. The only consumer today is the
// leaderboard cache invalidator; the GoChannel transport keeps everything
// inside the process.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewSlogLogger(logger),
		),
	}
}

func (b *Bus) PublishScoreUpdated(event ScoreUpdated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal score event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return b.pubsub.Publish(TopicScoreUpdated, msg)
}

func (b *Bus) SubscribeScoreUpdated(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicScoreUpdated)
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
