// Package messaging implements the change-notification contract.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/billfold/backend/internal/application/adapter"
)

// DefaultChannel is the redis pub/sub channel change notifications are
// published on.
const DefaultChannel = "billfold:changes"

// RedisNotifier publishes change notifications on a redis pub/sub channel
// so out-of-process views can refresh. Publish failures are logged, never
// propagated: a notification must not fail the mutation it describes.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a notifier publishing on the given channel.
// An empty channel falls back to DefaultChannel.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

// NotifyChanged implements adapter.ChangeNotifier.
func (n *RedisNotifier) NotifyChanged(ctx context.Context, aggregate string, id uuid.UUID) {
	payload, err := json.Marshal(Event{Aggregate: aggregate, ID: id})
	if err != nil {
		slog.Error("Failed to marshal change notification",
			"aggregate", aggregate, "id", id, "error", err)
		return
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		slog.Error("Failed to publish change notification",
			"channel", n.channel, "aggregate", aggregate, "id", id, "error", err)
	}
}

// compile-time interface checks
var (
	_ adapter.ChangeNotifier = (*Bus)(nil)
	_ adapter.ChangeNotifier = (*RedisNotifier)(nil)
	_ adapter.ChangeNotifier = (MultiNotifier)(nil)
)
