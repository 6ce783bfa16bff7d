package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "scheduler",
	Pass: "scheduler",
	Name: "fleet",
}

var defaultSnapshot = Snapshot{
	Backend:     BackendMemory,
	SaveTimeout: 3 * time.Second,
	Retry: Retry{
		MaxAttempts: 4,
		BaseDelay:   150 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	},
	S3: S3{
		Prefix: "schedule/",
		Region: "us-east-1",
	},
	Mongo: Mongo{
		Database:   "fleet",
		Collection: "schedule_snapshots",
	},
}

var defaultKafka = Kafka{
	GroupID: "fleet-scheduler",
	Topic:   "orders",
}

var defaultRateLimit = RateLimit{
	RPS:   20,
	Burst: 40,
}

var defaultScheduler = Scheduler{
	RemovalBuffer:      4 * time.Hour,
	ReallocateInterval: time.Minute,
}

var defaultLog = Log{
	Backend: "slog",
	Level:   "info",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultSnapshot returns the default persistence settings.
func DefaultSnapshot() Snapshot {
	return defaultSnapshot
}

// DefaultKafka returns the default intake settings. No brokers means disabled.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default HTTP throttling.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultScheduler returns the default scheduling policy.
func DefaultScheduler() Scheduler {
	return defaultScheduler
}

// DefaultLog returns the default logging settings.
func DefaultLog() Log {
	return defaultLog
}
