package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// onlineTTL is how long a user counts as online after their last sign-in.
// The online flag expires on its own; last-seen persists.
const onlineTTL = 5 * time.Minute

// PresenceTracker records user presence in Redis.
// Key format: presence:online:<user_id> (volatile) and
// presence:seen:<user_id> (persistent, RFC 3339 timestamp).
type PresenceTracker struct {
	client *redis.Client
}

// NewPresenceTracker creates a PresenceTracker wrapping the given Redis client.
func NewPresenceTracker(client *redis.Client) *PresenceTracker {
	return &PresenceTracker{client: client}
}

// SetOnline marks the user online as of the given time.
func (p *PresenceTracker) SetOnline(ctx context.Context, userID string, at time.Time) error {
	pipe := p.client.TxPipeline()
	pipe.Set(ctx, onlineKey(userID), "1", onlineTTL)
	pipe.Set(ctx, seenKey(userID), at.UTC().Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence set online: %w", err)
	}
	return nil
}

// Status reports whether the user is currently online and when they were
// last seen. A zero last-seen time means the user has never signed in.
func (p *PresenceTracker) Status(ctx context.Context, userID string) (bool, time.Time, error) {
	n, err := p.client.Exists(ctx, onlineKey(userID)).Result()
	if err != nil {
		return false, time.Time{}, fmt.Errorf("presence online check: %w", err)
	}
	online := n > 0

	raw, err := p.client.Get(ctx, seenKey(userID)).Result()
	if err == redis.Nil {
		return online, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, fmt.Errorf("presence last seen: %w", err)
	}

	seen, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("presence parse last seen: %w", err)
	}
	return online, seen, nil
}

func onlineKey(userID string) string {
	return "presence:online:" + userID
}

func seenKey(userID string) string {
	return "presence:seen:" + userID
}
