package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "LOG_LEVEL", "MCP_HOST", "PORT", "JOBS_API_BASE_URL", "JOBS_PAGE_SIZE",
		"FETCH_MAX_RETRIES", "FETCH_RETRY_DELAY", "FETCH_JITTER_MIN", "FETCH_JITTER_MAX",
		"FETCH_CONCURRENCY", "FETCH_REQUEST_TIMEOUT", "FETCH_RPS",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "MONGO_USER_FIELD",
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
		"GOOGLE_SHEETS_CREDENTIALS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, time.Second, cfg.Fetch.RetryDelay)
	assert.Equal(t, 1, cfg.Fetch.Concurrency)
	assert.Equal(t, "resumebuilder", cfg.Mongo.Database)
	assert.False(t, cfg.Neo4j.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadRequiresMongoURI(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestLoadRequiresNeo4jCredentialsWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_USERNAME")
	assert.Contains(t, err.Error(), "NEO4J_PASSWORD")
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("FETCH_MAX_RETRIES", "5")
	t.Setenv("FETCH_RETRY_DELAY", "250")
	t.Setenv("FETCH_JITTER_MIN", "0s")
	t.Setenv("FETCH_JITTER_MAX", "100ms")
	t.Setenv("FETCH_CONCURRENCY", "4")
	t.Setenv("FETCH_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetch.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.RetryDelay)
	assert.Equal(t, time.Duration(0), cfg.Fetch.JitterMin)
	assert.Equal(t, 100*time.Millisecond, cfg.Fetch.JitterMax)
	assert.Equal(t, 4, cfg.Fetch.Concurrency)
	assert.Equal(t, 2.5, cfg.Fetch.RequestsPerSecond)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	t.Setenv("FETCH_MAX_RETRIES", "three")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FETCH_MAX_RETRIES", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("FETCH_MAX_RETRIES", "3")
	t.Setenv("FETCH_JITTER_MIN", "2s")
	t.Setenv("FETCH_JITTER_MAX", "1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadYAMLOverlayThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "jobfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
jobs:
  page_size: 50
fetch:
  max_retries: 4
  retry_delay: 2s
  concurrency: 2
mongo:
  collection: cvs
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("FETCH_CONCURRENCY", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Jobs.PageSize)
	assert.Equal(t, 4, cfg.Fetch.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Fetch.RetryDelay)
	assert.Equal(t, 3, cfg.Fetch.Concurrency)
	assert.Equal(t, "cvs", cfg.Mongo.Collection)
}

func TestLoadYAMLBadDuration(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  jitter_max: soon\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadWithoutMongoKeepsEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBS_API_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("FETCH_CONCURRENCY", "4")
	t.Setenv("FETCH_JITTER_MIN", "0")
	t.Setenv("FETCH_JITTER_MAX", "0")

	cfg, err := LoadWithout(RequireMongo)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Jobs.BaseURL)
	assert.Equal(t, 4, cfg.Fetch.Concurrency)
	assert.Zero(t, cfg.Fetch.JitterMax)
}

func TestLoadWithoutMongoStillValidates(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_JITTER_MIN", "2s")
	t.Setenv("FETCH_JITTER_MAX", "1s")

	_, err := LoadWithout(RequireMongo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadWithoutMongoStillRequiresNeo4jCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")

	_, err := LoadWithout(RequireMongo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_USERNAME")
	assert.NotContains(t, err.Error(), "MONGO_URI")
}
