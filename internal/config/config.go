// Package config provides application configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel          = "INFO"
	DefaultWorkerCount       = 0 // 0 means one worker per CPU
	DefaultMaxFileSizeBytes  = 1024 * 1024
	DefaultReportingInterval = 5 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	dataDir           string
	logLevel          string
	logFormat         LogFormat
	workerCount       int
	maxFileSizeBytes  int64
	languages         []string
	reportingInterval time.Duration
}

// DefaultDataDir returns the default data directory (~/.typedrill).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".typedrill"
	}
	return filepath.Join(home, ".typedrill")
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		dataDir:           DefaultDataDir(),
		logLevel:          DefaultLogLevel,
		logFormat:         LogFormatPretty,
		workerCount:       DefaultWorkerCount,
		maxFileSizeBytes:  DefaultMaxFileSizeBytes,
		reportingInterval: DefaultReportingInterval,
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WorkerCount returns the extraction worker count; 0 means one per CPU.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// MaxFileSizeBytes returns the per-file extraction size limit.
func (c AppConfig) MaxFileSizeBytes() int64 { return c.maxFileSizeBytes }

// Languages returns the language filter; empty means all supported.
func (c AppConfig) Languages() []string {
	languages := make([]string, len(c.languages))
	copy(languages, c.languages)
	return languages
}

// ReportingInterval returns the minimum interval between progress log lines.
func (c AppConfig) ReportingInterval() time.Duration { return c.reportingInterval }

// AppConfigOption configures an AppConfig.
type AppConfigOption func(AppConfig) AppConfig

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.dataDir = dir
		return c
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.logLevel = strings.ToUpper(level)
		return c
	}
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.logFormat = format
		return c
	}
}

// WithWorkerCount sets the extraction worker count.
func WithWorkerCount(n int) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.workerCount = n
		return c
	}
}

// WithMaxFileSize sets the per-file extraction size limit.
func WithMaxFileSize(bytes int64) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.maxFileSizeBytes = bytes
		return c
	}
}

// WithLanguages sets the language filter.
func WithLanguages(languages []string) AppConfigOption {
	return func(c AppConfig) AppConfig {
		filtered := make([]string, 0, len(languages))
		for _, l := range languages {
			if l = strings.TrimSpace(strings.ToLower(l)); l != "" {
				filtered = append(filtered, l)
			}
		}
		c.languages = filtered
		return c
	}
}

// WithReportingInterval sets the progress log throttle interval.
func WithReportingInterval(d time.Duration) AppConfigOption {
	return func(c AppConfig) AppConfig {
		c.reportingInterval = d
		return c
	}
}

// NewAppConfigWithOptions creates an AppConfig with the given options applied.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	cfg := NewAppConfig()
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return cfg
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}
