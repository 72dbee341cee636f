package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
http:
  address: ":18080"
database:
  host: db
  port: 5433
  user: flights
  password: secret
  name: flights
  ssl_mode: disable
kafka:
  brokers: ["kafka:9092"]
  search_events_topic: search_events
filter:
  flights_cache_ttl_seconds: 30
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FILTER_CHUNK_SIZE", "256")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ":18080", cfg.HTTP.Address)
	assert.Equal(t, "host=db port=5433 user=flights password=secret dbname=flights sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Filter.CacheTTL())
	assert.Equal(t, 256, cfg.Filter.ChunkSize)
	assert.Equal(t, 4096, cfg.Filter.ParallelThreshold)
	assert.Equal(t, 5, cfg.Worker.CacheRefreshMinutes)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("FLIGHTS_CACHE_TTL_SECONDS", "120")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Filter.CacheTTL())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [unterminated"))
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitZerosKept(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
filter:
  flights_cache_ttl_seconds: 0
  parallel_threshold: 0
`))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Filter.CacheTTL())
	assert.Equal(t, 0, cfg.Filter.ParallelThreshold)
	assert.Equal(t, 1024, cfg.Filter.ChunkSize)
	assert.Equal(t, 3, cfg.Kafka.PublishRetries)
}

func TestLoadConfig_EnvZeroOverridesFile(t *testing.T) {
	t.Setenv("FILTER_PARALLEL_THRESHOLD", "0")

	cfg, err := LoadConfig(writeConfig(t, "filter:\n  parallel_threshold: 100\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Filter.ParallelThreshold)
}

func TestLoadConfig_RejectsNonPositiveRefresh(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{name: "zero in file", body: "worker:\n  cache_refresh_minutes: 0\n"},
		{name: "negative in file", body: "worker:\n  cache_refresh_minutes: -2\n"},
		{name: "zero in env", body: sampleConfig, env: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("WORKER_CACHE_REFRESH_MINUTES", tc.env)
			}
			_, err := LoadConfig(writeConfig(t, tc.body))
			assert.ErrorContains(t, err, "cache_refresh_minutes")
		})
	}
}

func TestWorkerConfig_RefreshInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, Default().Worker.RefreshInterval())
}
