package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

type feedStub struct {
	result   domain.AggregateResult
	keywords []string
	err      error
	gotUser  string
}

func (f *feedStub) FetchJobs(_ context.Context, userID string) (domain.AggregateResult, error) {
	f.gotUser = userID
	return f.result, f.err
}

func (f *feedStub) Keywords(_ context.Context, userID string) ([]string, error) {
	f.gotUser = userID
	return f.keywords, f.err
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestFetchJobsMissingUserID(t *testing.T) {
	h := NewHandler(&feedStub{err: domain.ErrUserIDRequired}, nil)

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPost, ""},
		{http.MethodPost, `{"userId": "  "}`},
		{http.MethodPost, `{}`},
	} {
		w := serve(t, h, tc.method, "/api/fetchjobs", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %q", tc.method, tc.body)
		assert.Equal(t, domain.ErrUserIDRequired.Error(), decodeError(t, w))
	}
}

func TestFetchJobsInvalidBody(t *testing.T) {
	h := NewHandler(&feedStub{}, nil)

	w := serve(t, h, http.MethodPost, "/api/fetchjobs", `{"userId":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errInvalidBody.Error(), decodeError(t, w))
}

func TestFetchJobsNoResumes(t *testing.T) {
	h := NewHandler(&feedStub{err: domain.ErrNoResumes}, nil)

	w := serve(t, h, http.MethodGet, "/api/fetchjobs?userId=u1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.ErrNoResumes.Error(), decodeError(t, w))
}

func TestFetchJobsUnexpectedError(t *testing.T) {
	h := NewHandler(&feedStub{err: fmt.Errorf("load resumes: %w", errors.New("server selection timeout"))}, nil)

	w := serve(t, h, http.MethodGet, "/api/fetchjobs?userId=u1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, w))
}

func TestFetchJobsTimeoutIsInternalError(t *testing.T) {
	h := NewHandler(&feedStub{err: fmt.Errorf("job.Service: aggregation interrupted: %w", context.DeadlineExceeded)}, nil)

	w := serve(t, h, http.MethodGet, "/api/fetchjobs?userId=u1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, w))
}

func TestFetchJobsReturnsPostingsWithPartialFailures(t *testing.T) {
	runID := uuid.New()
	feed := &feedStub{result: domain.AggregateResult{
		RunID: runID,
		Jobs: []domain.JobPosting{
			{ID: "1", URL: "https://jobicy.com/jobs/1", Source: "jobicy", SourceKeyword: "go"},
			{ID: "2", URL: "https://jobicy.com/jobs/2", Source: "jobicy", SourceKeyword: "go"},
		},
		Failures: []domain.KeywordFailure{{Keyword: "rust", Attempts: 3, Err: "throttled"}},
	}}
	h := NewHandler(feed, nil)

	w := serve(t, h, http.MethodPost, "/api/fetchjobs", `{"userId": "user-7"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", feed.gotUser)
	assert.Equal(t, runID.String(), w.Header().Get(headerRunID))
	assert.Equal(t, "1", w.Header().Get(headerKeywordFailures))

	var jobs []domain.JobPosting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 2)
	assert.Equal(t, "go", jobs[0].SourceKeyword)
}

func TestFetchJobsEmptyResultIsArray(t *testing.T) {
	h := NewHandler(&feedStub{result: domain.AggregateResult{Jobs: []domain.JobPosting{}}}, nil)

	w := serve(t, h, http.MethodGet, "/api/fetchjobs?userId=u1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestKeywordsEndpoint(t *testing.T) {
	h := NewHandler(&feedStub{keywords: []string{"go", "react"}}, nil)

	w := serve(t, h, http.MethodGet, "/api/keywords?userId=u1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId": "u1", "keywords": ["go", "react"]}`, w.Body.String())
}

func TestHealthAndCORS(t *testing.T) {
	h := NewHandler(&feedStub{}, nil)

	w := serve(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = serve(t, h, http.MethodOptions, "/api/fetchjobs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("x: %w", domain.ErrUserIDRequired)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("x: %w", domain.ErrNoResumes)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("aggregation interrupted: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
