// Package ratelimit throttles sign-in attempts per key (the account email).
//
// Two implementations are provided: an in-process token bucket built on
// golang.org/x/time/rate and a fixed-window counter kept in Redis so that
// several server replicas share one budget.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait when not allowed.
	RetryAfter time.Duration
}

// Limiter decides whether an attempt identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
	Close() error
}

// Unlimited allows everything. Used when the limit is disabled.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) Decision { return Decision{Allowed: true} }
func (Unlimited) Close() error                           { return nil }
