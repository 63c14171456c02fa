package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockoutTracker counts consecutive failed sign-in attempts per account,
// backed by Redis so counters survive restarts and are shared across
// replicas. Keys expire after the configured lockout window, which is what
// unlocks an account again.
// Key format: lockout:<normalised email>
type LockoutTracker struct {
	client *redis.Client
	window time.Duration
}

// NewLockoutTracker creates a LockoutTracker wrapping the given Redis client.
func NewLockoutTracker(client *redis.Client, window time.Duration) *LockoutTracker {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LockoutTracker{client: client, window: window}
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LockoutTracker) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("lockout incr: %w", err)
	}
	if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
		return 0, fmt.Errorf("lockout expire: %w", err)
	}
	return n, nil
}

// Failures returns the current failure count. A missing key counts as zero.
func (t *LockoutTracker) Failures(ctx context.Context, email string) (int64, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lockout get: %w", err)
	}
	return n, nil
}

// Reset clears the counter after a successful sign-in.
func (t *LockoutTracker) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

func (t *LockoutTracker) key(email string) string {
	return "lockout:" + strings.ToLower(strings.TrimSpace(email))
}
