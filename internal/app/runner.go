package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/service/scheduling"
	"fleet-scheduler/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the scheduler process.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the process using the provided DI container and blocks
// until it stops.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	defer func() { _ = logger.Sync() }()

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

// MustRun runs the default runner.
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

type runIn struct {
	dig.In
	Ctx      context.Context
	Logger   logx.Logger
	Server   *http.Server
	Service  *scheduling.Service
	Consumer *kafka.Consumer
	Interval reallocateInterval
	Closer   resourceCloser
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runIn) error {
	if err := in.Service.Restore(in.Ctx); err != nil {
		return err
	}
	defer closeResources(in.Logger, in.Service, in.Consumer, in.Closer)

	g, ctx := errgroup.WithContext(in.Ctx)

	g.Go(func() error {
		in.Logger.Info("fleet-scheduler listening", logx.String("addr", in.Server.Addr))
		if err := in.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return in.Consumer.Run(ctx)
	})
	g.Go(func() error {
		runReallocationLoop(ctx, in.Logger, in.Service, time.Duration(in.Interval))
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		in.Logger.Info("shutting down fleet-scheduler")
		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return in.Ctx.Err()
}

type reallocator interface {
	ReallocateUnreconciled(ctx context.Context) (int, error)
}

// runReallocationLoop sweeps unreconciled shipments until ctx is done.
func runReallocationLoop(ctx context.Context, logger logx.Logger, svc reallocator, interval time.Duration) {
	if interval <= 0 {
		logger.Info("reallocation sweep disabled")
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ReallocateUnreconciled(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("reallocation sweep failed", logx.Err(err))
				}
				continue
			}
			if n > 0 {
				logger.Info("reallocation sweep committed", logx.Int("shipments", n))
			}
		}
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(logger logx.Logger, svc *scheduling.Service, consumer *kafka.Consumer, closer resourceCloser) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	svc.Flush(ctx)
	if closer != nil {
		if err := closer(ctx); err != nil {
			logger.Error("snapshot backend close error", logx.Err(err))
		}
	}
}
