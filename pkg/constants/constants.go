// Package constants provides shared constants for the invoice-roi application.
package constants

import "time"

// Financial constants
const (
	// DecimalPlaces is the number of decimal places every reported figure is rounded to
	DecimalPlaces = 2
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Storage driver constants
const (
	// StorageDriverMemory keeps scenarios in process memory
	StorageDriverMemory = "memory"
	// StorageDriverSQLite keeps scenarios in a SQLite database file
	StorageDriverSQLite = "sqlite"
	// StorageDriverRedis keeps scenarios in Redis
	StorageDriverRedis = "redis"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "INVOICE_ROI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
	// DefaultRateLimitRequests is the number of write requests a client may make per window
	DefaultRateLimitRequests = 30
	// DefaultRateLimitWindow is the refill window of the write rate limiter
	DefaultRateLimitWindow = time.Minute
	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server
	DefaultShutdownTimeout = 10 * time.Second
	// DefaultVersion is reported when no build version is configured
	DefaultVersion = "dev"
)

// Storage defaults
const (
	// DefaultSQLitePath is the default SQLite database file
	DefaultSQLitePath = "scenarios.sqlite3"
	// DefaultRedisAddress is the default Redis endpoint
	DefaultRedisAddress = "localhost:6379"
	// DefaultRedisPrefix namespaces every key written by the Redis store
	DefaultRedisPrefix = "invoice-roi"
)

// Report defaults
const (
	// DefaultCurrencySymbol is prepended to monetary values in reports
	DefaultCurrencySymbol = "$"
	// ReportFilePrefix is the prefix of downloadable report file names
	ReportFilePrefix = "ROI_Report_"
)
