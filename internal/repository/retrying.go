package repository

import (
	"context"
	"time"

	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/scheduler"
)

type snapshotBackend interface {
	Save(ctx context.Context, snap scheduler.Snapshot) error
	LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the backoff of RetryingStore.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingStore retries transient failures of the wrapped backend with
// exponential backoff.
type RetryingStore struct {
	next      snapshotBackend
	logger    logx.Logger
	retries   counter
	cfg       RetryConfig
	retryable func(error) bool
}

// NewRetryingStore wraps next. It returns nil when next is nil.
func NewRetryingStore(next snapshotBackend, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingStore {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingStore{next: next, logger: logger, retries: retries, cfg: cfg, retryable: IsTransient}
}

// Save retries next.Save.
func (r *RetryingStore) Save(ctx context.Context, snap scheduler.Snapshot) error {
	return r.do(ctx, "Save", func() error {
		return r.next.Save(ctx, snap)
	})
}

// LoadLatest retries next.LoadLatest.
func (r *RetryingStore) LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error) {
	var (
		snap  scheduler.Snapshot
		found bool
	)
	err := r.do(ctx, "LoadLatest", func() error {
		var err error
		snap, found, err = r.next.LoadLatest(ctx)
		return err
	})
	return snap, found, err
}

func (r *RetryingStore) do(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !r.retryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("snapshot store retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	shift := attempt - 1
	d := base << shift
	if d <= 0 || d > max || d>>shift != base {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
