package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces all environment variables, e.g. TYPEDRILL_LOG_LEVEL.
const envPrefix = "TYPEDRILL"

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables with the TYPEDRILL_ prefix.
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: TYPEDRILL_DATA_DIR (default: ~/.typedrill)
	DataDir string `envconfig:"DATA_DIR"`

	// LogLevel is the log verbosity level.
	// Env: TYPEDRILL_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: TYPEDRILL_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WorkerCount is the number of extraction workers; 0 means one per CPU.
	// Env: TYPEDRILL_WORKER_COUNT (default: 0)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"0"`

	// MaxFileSizeBytes is the per-file extraction size limit.
	// Env: TYPEDRILL_MAX_FILE_SIZE_BYTES (default: 1048576)
	MaxFileSizeBytes int64 `envconfig:"MAX_FILE_SIZE_BYTES" default:"1048576"`

	// Languages is a comma-separated language filter; empty means all.
	// Env: TYPEDRILL_LANGUAGES
	Languages string `envconfig:"LANGUAGES"`

	// ReportingIntervalSeconds is the progress log throttle in seconds.
	// Env: TYPEDRILL_REPORTING_INTERVAL_SECONDS (default: 5)
	ReportingIntervalSeconds float64 `envconfig:"REPORTING_INTERVAL_SECONDS" default:"5"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.WorkerCount > 0 {
		opts = append(opts, WithWorkerCount(e.WorkerCount))
	}
	if e.MaxFileSizeBytes > 0 {
		opts = append(opts, WithMaxFileSize(e.MaxFileSizeBytes))
	}
	if e.Languages != "" {
		opts = append(opts, WithLanguages(strings.Split(e.Languages, ",")))
	}
	if e.ReportingIntervalSeconds > 0 {
		interval := time.Duration(e.ReportingIntervalSeconds * float64(time.Second))
		opts = append(opts, WithReportingInterval(interval))
	}

	return NewAppConfigWithOptions(opts...)
}
