// Package ratelimit provides fixed-window request limiting keyed by an
// arbitrary identity string (user id or client IP).
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
// retryAfter is only meaningful when ok is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}
