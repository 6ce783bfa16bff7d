package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/http/handlers"
	"fleet-scheduler/internal/http/middleware"
	"fleet-scheduler/internal/http/middleware/ratelimit"
	"fleet-scheduler/internal/http/router"
	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/metrics"
	"fleet-scheduler/internal/repository"
	"fleet-scheduler/internal/scheduler"
	"fleet-scheduler/internal/service/scheduling"
	"fleet-scheduler/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	conn       connectors
	consumer   kafkaConsumerFactory
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		conn: connectors{
			db:    connectDbWithRetry,
			mongo: repository.ConnectMongo,
			s3:    repository.NewS3Client,
		},
		consumer:  kafka.NewConsumer,
		logFatalf: log.Fatalf,
	}
}

// WithConfig makes the container use cfg instead of loading it.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithConsumerFactory replaces the Kafka consumer constructor.
func (b *ContainerBuilder) WithConsumerFactory(fn kafkaConsumerFactory) *ContainerBuilder {
	if fn != nil {
		b.consumer = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerStorage(container, b.conn); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container, b.consumer); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

// reallocateInterval is the period of the unreconciled-shipment sweep.
type reallocateInterval time.Duration

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func(cfg *config.Config) reallocateInterval {
			return reallocateInterval(cfg.Scheduler.ReallocateInterval)
		},
	)
}

type namedCounters struct {
	dig.Out
	RateLimited     prometheus.Counter `name:"rate_limit_exceeded_total"`
	SnapshotRetries prometheus.Counter `name:"snapshot_store_retries_total"`
}

func registerMetrics(container *dig.Container) error {
	registry := func() (*prometheus.Registry, prometheus.Registerer) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg, reg
	}
	counters := func(reg prometheus.Registerer) (namedCounters, error) {
		out := namedCounters{
			RateLimited:     metrics.NewRateLimitExceededTotal(),
			SnapshotRetries: metrics.NewSnapshotRetriesTotal(),
		}
		for _, c := range []prometheus.Collector{out.RateLimited, out.SnapshotRetries} {
			if err := reg.Register(c); err != nil {
				return namedCounters{}, err
			}
		}
		return out, nil
	}
	schedulingMetrics := func(reg prometheus.Registerer) (*metrics.Scheduling, error) {
		m := metrics.NewScheduling()
		if err := m.Register(reg); err != nil {
			return nil, err
		}
		return m, nil
	}
	return provideAll(container,
		registry,
		counters,
		schedulingMetrics,
		middleware.NewHTTPMetrics,
	)
}

func registerStorage(container *dig.Container, conn connectors) error {
	return provideAll(container, conn.newSnapshotStore)
}

func registerService(container *dig.Container) error {
	store := func(cfg *config.Config) *scheduler.Store {
		return scheduler.NewStore(scheduler.Options{
			RemovalBuffer:        cfg.Scheduler.RemovalBuffer,
			RequireActiveVehicle: cfg.Scheduler.RequireActiveVehicle,
		})
	}
	service := func(
		cfg *config.Config,
		st *scheduler.Store,
		snaps scheduling.SnapshotStore,
		m *metrics.Scheduling,
		logger logx.Logger,
	) *scheduling.Service {
		return scheduling.NewService(st, snaps, cfg.Snapshot.SaveTimeout, logger,
			scheduling.WithMetrics(m),
			scheduling.WithSeedFile(cfg.Scheduler.SeedFile),
		)
	}
	return provideAll(container, store, service)
}

func registerKafka(container *dig.Container, factory kafkaConsumerFactory) error {
	return provideAll(container,
		newOrdersProcessor,
		factory.newOrdersConsumer,
	)
}

type routerIn struct {
	dig.In
	Logger      logx.Logger
	Registry    *prometheus.Registry
	HTTPMetrics *middleware.HTTPMetrics
	RateLimit   *ratelimit.Middleware
	Base        *handlers.Handlers
	Fleet       *handlers.FleetHandler
	Schedule    *handlers.ScheduleHandler
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:        in.Base,
		Fleet:       in.Fleet,
		Schedule:    in.Schedule,
		Metrics:     promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{}),
		Middlewares: []func(http.Handler) http.Handler{middleware.Observability(in.Logger, in.HTTPMetrics)},
		Limited:     in.RateLimit.Handler(),
	})
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewFleetUsecase,
		handlers.NewFleetHandler,
		handlers.NewScheduleUsecase,
		handlers.NewScheduleHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}
