package ratelimit

import "time"

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock reports the current time; time.Now in production.
type Clock func() time.Time

// Unlimited admits every key. Used when rate limiting is disabled.
type Unlimited struct{}

func (Unlimited) Allow(string) bool { return true }
