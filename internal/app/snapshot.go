package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/dig"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/repository"
	"fleet-scheduler/internal/service/scheduling"
)

// resourceCloser releases whatever the snapshot backend holds open.
type resourceCloser func(context.Context) error

type connectors struct {
	db    func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)
	mongo func(context.Context, config.Mongo) (*mongo.Client, error)
	s3    func(context.Context, config.S3) (*s3.Client, error)
}

type snapshotIn struct {
	dig.In
	Ctx     context.Context
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"snapshot_store_retries_total"`
}

type snapshotOut struct {
	dig.Out
	Store  scheduling.SnapshotStore
	Closer resourceCloser
}

func (c connectors) newSnapshotStore(in snapshotIn) (snapshotOut, error) {
	cfg := in.Config.Snapshot
	logger := in.Logger.With(logx.String("backend", cfg.Backend))
	retry := repository.RetryConfig{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}
	noop := func(context.Context) error { return nil }

	switch cfg.Backend {
	case "", config.BackendMemory:
		return snapshotOut{Store: repository.NewMemoryStore(), Closer: noop}, nil

	case config.BackendPostgres:
		pool, err := c.db(in.Ctx, logger, in.Config.DB.DSN(), 10, time.Second)
		if err != nil {
			return snapshotOut{}, err
		}
		if err := repository.EnsureSchema(in.Ctx, pool); err != nil {
			pool.Close()
			return snapshotOut{}, err
		}
		repo := repository.NewSnapshotRepo(pool, repository.DefaultKeepVersions)
		return snapshotOut{
			Store: repository.NewRetryingStore(repo, logger, in.Retries, retry),
			Closer: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendS3:
		client, err := c.s3(in.Ctx, cfg.S3)
		if err != nil {
			return snapshotOut{}, err
		}
		store := repository.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix)
		return snapshotOut{
			Store:  repository.NewRetryingStore(store, logger, in.Retries, retry),
			Closer: noop,
		}, nil

	case config.BackendMongo:
		client, err := c.mongo(in.Ctx, cfg.Mongo)
		if err != nil {
			return snapshotOut{}, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return snapshotOut{
			Store:  repository.NewRetryingStore(repository.NewMongoStore(coll), logger, in.Retries, retry),
			Closer: client.Disconnect,
		}, nil

	default:
		return snapshotOut{}, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
