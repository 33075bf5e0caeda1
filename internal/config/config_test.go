package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, "INFO", cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, 0, cfg.WorkerCount())
	assert.Equal(t, int64(DefaultMaxFileSizeBytes), cfg.MaxFileSizeBytes())
	assert.Empty(t, cfg.Languages())
	assert.Equal(t, DefaultReportingInterval, cfg.ReportingInterval())
	assert.NotEmpty(t, cfg.DataDir())
}

func TestNewAppConfigWithOptions(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithDataDir("/var/lib/typedrill"),
		WithLogLevel("debug"),
		WithLogFormat(LogFormatJSON),
		WithWorkerCount(4),
		WithMaxFileSize(2048),
		WithLanguages([]string{" Go ", "PYTHON", ""}),
		WithReportingInterval(time.Second),
	)

	assert.Equal(t, "/var/lib/typedrill", cfg.DataDir())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, 4, cfg.WorkerCount())
	assert.Equal(t, int64(2048), cfg.MaxFileSizeBytes())
	assert.Equal(t, []string{"go", "python"}, cfg.Languages())
	assert.Equal(t, time.Second, cfg.ReportingInterval())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TYPEDRILL_LOG_LEVEL", "debug")
	t.Setenv("TYPEDRILL_LOG_FORMAT", "json")
	t.Setenv("TYPEDRILL_LANGUAGES", "go,rust")
	t.Setenv("TYPEDRILL_REPORTING_INTERVAL_SECONDS", "0.5")

	env, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := env.ToAppConfig()
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"go", "rust"}, cfg.Languages())
	assert.Equal(t, 500*time.Millisecond, cfg.ReportingInterval())
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"TYPEDRILL_DATA_DIR", "TYPEDRILL_LOG_LEVEL", "TYPEDRILL_LOG_FORMAT",
		"TYPEDRILL_WORKER_COUNT", "TYPEDRILL_MAX_FILE_SIZE_BYTES",
		"TYPEDRILL_LANGUAGES", "TYPEDRILL_REPORTING_INTERVAL_SECONDS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	env, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "INFO", env.LogLevel)
	assert.Equal(t, "pretty", env.LogFormat)
	assert.Equal(t, int64(1048576), env.MaxFileSizeBytes)
}

func TestLoadDotEnv_MissingFileIsSilent(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	t.Setenv("TYPEDRILL_WORKER_COUNT", "")
	require.NoError(t, os.Unsetenv("TYPEDRILL_WORKER_COUNT"))

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TYPEDRILL_WORKER_COUNT=3\n"), 0o644))

	cfg, err := LoadConfig(envPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.WorkerCount())
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, LogFormatJSON, parseLogFormat("json"))
	assert.Equal(t, LogFormatJSON, parseLogFormat("JSON"))
	assert.Equal(t, LogFormatPretty, parseLogFormat("pretty"))
	assert.Equal(t, LogFormatPretty, parseLogFormat("anything else"))
}
