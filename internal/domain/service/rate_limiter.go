package service

import "context"

// RateLimiter is a shared request-budget counter keyed by client identity.
// Implementations must be atomic across process instances.
type RateLimiter interface {
	// Allow consumes one unit of budget for the key and reports whether the
	// request is within the window's limit.
	Allow(ctx context.Context, key string) (bool, error)
}
