package ports

import (
	"context"
	"time"
)

// PresenceTracker records ephemeral online state. The online flag decays
// on its own (TTL) rather than being cleared explicitly; last-seen is
// kept until overwritten.
type PresenceTracker interface {
	SetOnline(ctx context.Context, userID string, at time.Time) error
	// Status returns whether the user is currently online and when they
	// were last seen. A user never seen returns (false, zero time, nil).
	Status(ctx context.Context, userID string) (bool, time.Time, error)
}
