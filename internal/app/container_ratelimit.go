package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/http/middleware/ratelimit"
	"fleet-scheduler/internal/logx"
)

const (
	rateLimitIdleTTL = 10 * time.Minute
	rateLimitMaxKeys = 100_000
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.RPS <= 0 {
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewKeyedLimiter(clock, ratelimit.Config{
		RPS:     rl.RPS,
		Burst:   rl.Burst,
		IdleTTL: rateLimitIdleTTL,
		MaxKeys: rateLimitMaxKeys,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return time.Now
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
