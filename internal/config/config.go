// Package config defines the application configuration and includes functions
// for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for invoice-roi.
type Configuration struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report,omitempty"`
}

// ServerConfig holds the HTTP API parameters.
type ServerConfig struct {
	Address     string          `mapstructure:"address" yaml:"address"`
	Port        string          `mapstructure:"port" yaml:"port,omitempty"` // used when address is unset
	MaxBodySize string          `mapstructure:"maxBodySize" yaml:"maxBodySize"`
	CORSOrigins []string        `mapstructure:"corsOrigins" yaml:"corsOrigins,omitempty"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit"`
	Version     string          `mapstructure:"version" yaml:"version,omitempty"`

	maxBodySizeBytes int64
}

// RateLimitConfig bounds how many write requests a client may issue per window.
// A zero Requests value disables limiting.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests" yaml:"requests"`
	Window   time.Duration `mapstructure:"window" yaml:"window"`
}

// StorageConfig selects the scenario store.
type StorageConfig struct {
	Driver string       `mapstructure:"driver" yaml:"driver"` // memory, sqlite, redis
	SQLite SQLiteConfig `mapstructure:"sqlite" yaml:"sqlite,omitempty"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis,omitempty"`
}

// SQLiteConfig holds SQLite store options.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// RedisConfig holds Redis store options.
type RedisConfig struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db,omitempty"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds CLI output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, json
}

// ReportConfig holds report rendering options.
type ReportConfig struct {
	CurrencySymbol string `mapstructure:"currencySymbol" yaml:"currencySymbol,omitempty"`
}

// MaxBodySizeBytes returns the parsed request body limit.
func (s ServerConfig) MaxBodySizeBytes() int64 {
	return s.maxBodySizeBytes
}

// envKeys are the keys that may be overridden through INVOICE_ROI_* variables.
var envKeys = []string{
	"server.address",
	"server.maxBodySize",
	"server.version",
	"server.rateLimit.requests",
	"server.rateLimit.window",
	"storage.driver",
	"storage.sqlite.path",
	"storage.redis.address",
	"storage.redis.password",
	"storage.redis.db",
	"storage.redis.prefix",
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
	"report.currencySymbol",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.rateLimit.requests", constants.DefaultRateLimitRequests)
	v.SetDefault("server.rateLimit.window", constants.DefaultRateLimitWindow)
	v.SetDefault("server.version", constants.DefaultVersion)
	v.SetDefault("storage.driver", constants.StorageDriverMemory)
	v.SetDefault("storage.sqlite.path", constants.DefaultSQLitePath)
	v.SetDefault("storage.redis.address", constants.DefaultRedisAddress)
	v.SetDefault("storage.redis.prefix", constants.DefaultRedisPrefix)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("report.currencySymbol", constants.DefaultCurrencySymbol)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	// Hosting platforms announce the listen port through PORT.
	_ = v.BindEnv("server.port", "PORT")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults, still subject to
// environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (c *Configuration) normalize() error {
	if c.Server.Address == "" {
		if port := strings.TrimSpace(c.Server.Port); port != "" {
			c.Server.Address = ":" + port
		} else {
			c.Server.Address = constants.DefaultServerAddress
		}
	}

	size, err := ParseSize(c.Server.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.Server.maxBodySizeBytes = size

	if c.Server.RateLimit.Requests < 0 {
		return fmt.Errorf("rate limit requests must not be negative, got %d", c.Server.RateLimit.Requests)
	}
	if c.Server.RateLimit.Requests > 0 && c.Server.RateLimit.Window <= 0 {
		c.Server.RateLimit.Window = constants.DefaultRateLimitWindow
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if err := validation.ValidateStorageDriver(c.Storage.Driver); err != nil {
		return err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

// ValidateConfiguration reports settings that are legal but probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch c.Storage.Driver {
	case constants.StorageDriverMemory:
		warnings = append(warnings, "storage driver is memory - saved scenarios are lost on restart")
	case constants.StorageDriverSQLite:
		if c.Storage.SQLite.Path == ":memory:" {
			warnings = append(warnings, "sqlite path is :memory: - saved scenarios are lost on restart")
		}
	}

	if c.Server.RateLimit.Requests == 0 {
		warnings = append(warnings, "rate limiting is disabled")
	}
	if len(c.Server.CORSOrigins) == 0 {
		warnings = append(warnings, "no CORS origins configured - requests from every origin are allowed")
	}
	if c.Report.CurrencySymbol == "" {
		warnings = append(warnings, "report currency symbol is empty - amounts are rendered without a symbol")
	}
	return warnings
}

// Exists reports whether a configuration file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
