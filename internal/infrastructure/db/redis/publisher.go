package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes realtime events onto named channels. Listening edges
// (dashboard, admin UI) subscribe to the same channel names after passing
// the channel authorization endpoint.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a Publisher wrapping the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serialises the payload as JSON and publishes it to the channel.
// It returns any marshal or transport error; callers decide whether that
// failure matters.
func (p *Publisher) Publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("publish %s: marshal: %w", channel, err)
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}
