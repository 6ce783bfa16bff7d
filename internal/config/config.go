package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores scheduler service settings.
type Config struct {
	Port      int
	DB        DB
	Snapshot  Snapshot
	Kafka     Kafka
	RateLimit RateLimit
	Scheduler Scheduler
	Log       Log
}

// DB holds PostgreSQL connection parts.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the connection string for pgx.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Snapshot selects and configures the snapshot persistence backend.
type Snapshot struct {
	Backend     string // memory | postgres | s3 | mongo
	SaveTimeout time.Duration
	Retry       Retry
	S3          S3
	Mongo       Mongo
}

// Retry configures backoff for transient persistence failures.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// S3 configures the object storage backend.
type S3 struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Mongo configures the document storage backend.
type Mongo struct {
	URI        string
	Database   string
	Collection string
}

// Kafka configures the order intake consumer. Empty Brokers disables it.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Enabled reports whether the consumer should run.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

// RateLimit configures per-client HTTP throttling.
type RateLimit struct {
	RPS   float64
	Burst int
}

// Scheduler holds scheduling policy.
type Scheduler struct {
	RemovalBuffer        time.Duration
	RequireActiveVehicle bool
	SeedFile             string
	ReallocateInterval   time.Duration
}

// Log configures the logging backend.
type Log struct {
	Backend string // slog | zap
	Level   string
}

// Backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMongo    = "mongo"
)

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := fromEnv()

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Snapshot.Backend, "snapshot-backend", cfg.Snapshot.Backend, "snapshot backend: memory, postgres, s3 or mongo")
	fs.StringVar(&cfg.Scheduler.SeedFile, "seed", cfg.Scheduler.SeedFile, "JSON seed file applied when no snapshot exists")
	fs.BoolVar(&cfg.Scheduler.RequireActiveVehicle, "require-active-vehicle", cfg.Scheduler.RequireActiveVehicle, "reject bookings on inactive vehicles")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	if !fs.Parsed() {
		if err := fs.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fromEnv() Config {
	defDB := DefaultDB()
	defSnap := DefaultSnapshot()
	defKafka := DefaultKafka()
	defRL := DefaultRateLimit()
	defSched := DefaultScheduler()
	defLog := DefaultLog()

	return Config{
		Port: envInt("PORT", DefaultPort()),
		DB: DB{
			Host: envString("POSTGRES_HOST", defDB.Host),
			Port: envString("POSTGRES_PORT", defDB.Port),
			User: envString("POSTGRES_USER", defDB.User),
			Pass: envString("POSTGRES_PASSWORD", defDB.Pass),
			Name: envString("POSTGRES_DB", defDB.Name),
		},
		Snapshot: Snapshot{
			Backend:     strings.ToLower(envString("SNAPSHOT_BACKEND", defSnap.Backend)),
			SaveTimeout: envDuration("SNAPSHOT_SAVE_TIMEOUT", defSnap.SaveTimeout),
			Retry: Retry{
				MaxAttempts: envInt("SNAPSHOT_RETRY_ATTEMPTS", defSnap.Retry.MaxAttempts),
				BaseDelay:   envDuration("SNAPSHOT_RETRY_BASE_DELAY", defSnap.Retry.BaseDelay),
				MaxDelay:    envDuration("SNAPSHOT_RETRY_MAX_DELAY", defSnap.Retry.MaxDelay),
			},
			S3: S3{
				Bucket:    envString("S3_BUCKET", defSnap.S3.Bucket),
				Prefix:    envString("S3_PREFIX", defSnap.S3.Prefix),
				Region:    envString("S3_REGION", defSnap.S3.Region),
				Endpoint:  envString("S3_ENDPOINT", defSnap.S3.Endpoint),
				AccessKey: envString("S3_ACCESS_KEY", ""),
				SecretKey: envString("S3_SECRET_KEY", ""),
			},
			Mongo: Mongo{
				URI:        envString("MONGO_URI", defSnap.Mongo.URI),
				Database:   envString("MONGO_DATABASE", defSnap.Mongo.Database),
				Collection: envString("MONGO_COLLECTION", defSnap.Mongo.Collection),
			},
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS", defKafka.Brokers),
			GroupID: envString("KAFKA_GROUP_ID", defKafka.GroupID),
			Topic:   envString("KAFKA_ORDERS_TOPIC", defKafka.Topic),
		},
		RateLimit: RateLimit{
			RPS:   envFloat("RATE_LIMIT_RPS", defRL.RPS),
			Burst: envInt("RATE_LIMIT_BURST", defRL.Burst),
		},
		Scheduler: Scheduler{
			RemovalBuffer:        envDuration("SCHEDULER_REMOVAL_BUFFER", defSched.RemovalBuffer),
			RequireActiveVehicle: envBool("SCHEDULER_REQUIRE_ACTIVE_VEHICLE", defSched.RequireActiveVehicle),
			SeedFile:             envString("SCHEDULER_SEED_FILE", defSched.SeedFile),
			ReallocateInterval:   envDuration("SCHEDULER_REALLOCATE_INTERVAL", defSched.ReallocateInterval),
		},
		Log: Log{
			Backend: strings.ToLower(envString("LOG_BACKEND", defLog.Backend)),
			Level:   envString("LOG_LEVEL", defLog.Level),
		},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	switch c.Snapshot.Backend {
	case BackendMemory, BackendPostgres:
	case BackendS3:
		if c.Snapshot.S3.Bucket == "" {
			errs = append(errs, errors.New("s3 snapshot backend requires S3_BUCKET"))
		}
	case BackendMongo:
		if c.Snapshot.Mongo.URI == "" {
			errs = append(errs, errors.New("mongo snapshot backend requires MONGO_URI"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown snapshot backend %q", c.Snapshot.Backend))
	}
	if c.Snapshot.SaveTimeout <= 0 {
		errs = append(errs, fmt.Errorf("snapshot save timeout must be positive, got %s", c.Snapshot.SaveTimeout))
	}
	if c.Snapshot.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("snapshot retry attempts must be at least 1, got %d", c.Snapshot.Retry.MaxAttempts))
	}
	if c.Kafka.Enabled() && (c.Kafka.GroupID == "" || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("kafka requires both group id and topic"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate limit must not be negative"))
	}
	if c.Scheduler.RemovalBuffer < 0 {
		errs = append(errs, fmt.Errorf("removal buffer must not be negative, got %s", c.Scheduler.RemovalBuffer))
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.Log.Backend))
	}
	return errors.Join(errs...)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) int {
	if v := envString(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := envString(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("warning: %s=%q is not a number, using %v", key, v, def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := envString(key, ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("warning: %s=%q is not a bool, using %t", key, v, def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := envString(key, ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

func envList(key string, def []string) []string {
	v := envString(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
