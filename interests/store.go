package interests

import "context"

// Store keeps per-user interest lists. Implementations must compare
// case-insensitively on Add and Remove while preserving the caller's original
// casing, and must serialize writes to a single user's list.
type Store interface {
	// Get returns the user's interests in insertion order, empty for an
	// unknown user.
	Get(ctx context.Context, userID string) ([]string, error)
	// Add appends a trimmed interest unless a case-insensitive duplicate
	// already exists.
	Add(ctx context.Context, userID, interest string) error
	// Remove deletes every entry case-insensitively equal to interest.
	Remove(ctx context.Context, userID, interest string) error
	// Set replaces the user's list verbatim. Unlike Add it applies no
	// trimming or dedup; callers rely on that asymmetry.
	Set(ctx context.Context, userID string, interests []string) error
	// Clear deletes the user's entry entirely.
	Clear(ctx context.Context, userID string) error
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)
