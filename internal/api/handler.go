// Package api serves the job feed over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

const (
	headerRunID           = "X-Run-Id"
	headerKeywordFailures = "X-Keyword-Failures"
	maxBodyBytes          = 1 << 20
)

// FeedService is the subset of the feed service the handlers use
type FeedService interface {
	FetchJobs(ctx context.Context, userID string) (domain.AggregateResult, error)
	Keywords(ctx context.Context, userID string) ([]string, error)
}

// Handler routes job feed requests
type Handler struct {
	feed     FeedService
	log      *logging.Logger
	validate *validator.Validate
	mux      *http.ServeMux
}

type fetchJobsRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// NewHandler builds the HTTP handler with logging and CORS middleware
func NewHandler(feed FeedService, log *logging.Logger) http.Handler {
	if log == nil {
		log = logging.NewNop()
	}

	h := &Handler{
		feed:     feed,
		log:      log,
		validate: validator.New(),
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /api/fetchjobs", h.handleFetchJobs)
	h.mux.HandleFunc("POST /api/fetchjobs", h.handleFetchJobs)
	h.mux.HandleFunc("GET /api/keywords", h.handleKeywords)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)

	return h.withLogging(h.withCORS(h.mux))
}

func (h *Handler) handleFetchJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	res, err := h.feed.FetchJobs(r.Context(), userID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	if len(res.Failures) > 0 {
		h.log.Warn("keywords failed during aggregation",
			"run_id", res.RunID.String(),
			"user_id", userID,
			"failures", len(res.Failures),
		)
	}

	w.Header().Set(headerRunID, res.RunID.String())
	w.Header().Set(headerKeywordFailures, strconv.Itoa(len(res.Failures)))
	h.jsonResponse(w, http.StatusOK, res.Jobs)
}

func (h *Handler) handleKeywords(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	keywords, err := h.feed.Keywords(r.Context(), userID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]any{
		"userId":   userID,
		"keywords": keywords,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID reads the user id from the query string or, for POST, a JSON body
func (h *Handler) userID(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("userId")); id != "" {
		return id, nil
	}
	if r.Method != http.MethodPost {
		return "", domain.ErrUserIDRequired
	}

	var req fetchJobsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", domain.ErrUserIDRequired
		}
		return "", errInvalidBody
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if err := h.validate.Struct(req); err != nil {
		return "", domain.ErrUserIDRequired
	}
	return req.UserID, nil
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode JSON response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	h.jsonResponse(w, status, map[string]string{"error": errorMessage(status, err)})
}

func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", headerRunID+", "+headerKeywordFailures)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
