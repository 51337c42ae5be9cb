package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

func setFetchEnv(t *testing.T, baseURL string) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "MONGO_URI", "NEO4J_URI", "FETCH_CONCURRENCY", "FETCH_MAX_RETRIES"} {
		t.Setenv(key, "")
	}
	t.Setenv("JOBS_API_BASE_URL", baseURL)
	t.Setenv("FETCH_JITTER_MIN", "0")
	t.Setenv("FETCH_JITTER_MAX", "0")
	t.Setenv("FETCH_RETRY_DELAY", "0")
}

func TestFetchCommandUsesConfiguredAPI(t *testing.T) {
	var hits atomic.Int32
	var gotTag atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotTag.Store(r.URL.Query().Get("tag"))
		_, _ = w.Write([]byte(`{"jobs": [
			{"id": 101, "url": "https://jobicy.com/jobs/101", "jobTitle": "Go Engineer", "companyName": "Acme"}
		]}`))
	}))
	defer srv.Close()
	setFetchEnv(t, srv.URL)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"fetch", "-k", "golang", "--concurrency", "1"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "golang", gotTag.Load())

	var jobs []domain.JobPosting
	require.NoError(t, json.Unmarshal(out.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "101", jobs[0].ID)
	assert.Equal(t, "golang", jobs[0].SourceKeyword)
}

func TestFetchCommandReportsInvalidConfig(t *testing.T) {
	setFetchEnv(t, "http://127.0.0.1:1")
	t.Setenv("FETCH_JITTER_MIN", "2s")
	t.Setenv("FETCH_JITTER_MAX", "1s")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"fetch", "-k", "golang"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
