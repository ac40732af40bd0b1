package inbound

import (
	"context"
	"time"
)

// RateLimitService guards the unauthenticated auth endpoints. A nil or
// noop implementation disables the guard without touching callers.
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
	IsBlocked(ctx context.Context, key string) (bool, error)
}
