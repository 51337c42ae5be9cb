package job

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/domain/keyword"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// Service aggregates postings for a keyword set
type Service interface {
	// Aggregate extracts keywords from resumes and searches them
	Aggregate(ctx context.Context, userID string, resumes []domain.ResumeDocument) (domain.AggregateResult, error)

	// Search runs the pipeline for an explicit keyword list
	Search(ctx context.Context, userID string, keywords []string) (domain.AggregateResult, error)
}

// RunRecorder stores run summaries
type RunRecorder interface {
	RecordRun(ctx context.Context, run domain.SearchRun) error
}

// PoolSize is the number of concurrent fetch workers
type PoolSize int

// Option configures Service
type Option func(*config)

type config struct {
	fetcher     *Fetcher
	concurrency int
	recorder    RunRecorder
	log         *logging.Logger
	clock       func() time.Time
}

// WithFetcher sets the keyword fetcher
func WithFetcher(f *Fetcher) Option {
	return func(c *config) {
		c.fetcher = f
	}
}

// WithConcurrency sets the worker count
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// WithRecorder sets where run summaries are recorded
func WithRecorder(r RunRecorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

// WithLogger sets the service logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		concurrency: 1,
		log:         logging.NewNop(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.fetcher == nil {
		return nil, fmt.Errorf("job.Service: fetcher is required")
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}

	return &service{
		fetcher:     cfg.fetcher,
		concurrency: cfg.concurrency,
		recorder:    cfg.recorder,
		log:         cfg.log,
		clock:       cfg.clock,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(fetcher *Fetcher, workers PoolSize, recorder RunRecorder, log *logging.Logger) (Service, error) {
	return NewService(
		WithFetcher(fetcher),
		WithConcurrency(int(workers)),
		WithRecorder(recorder),
		WithLogger(log),
	)
}

type service struct {
	fetcher     *Fetcher
	concurrency int
	recorder    RunRecorder
	log         *logging.Logger
	clock       func() time.Time
}

// Aggregate extracts the keyword set and searches it. An empty set
// returns an empty result without touching the upstream.
func (s *service) Aggregate(
	ctx context.Context,
	userID string,
	resumes []domain.ResumeDocument,
) (domain.AggregateResult, error) {
	return s.Search(ctx, userID, keyword.Extract(resumes))
}

// Search fans the keywords out to the worker pool and merges the results.
// Per-keyword failures are reported in the result, not as an error.
func (s *service) Search(ctx context.Context, userID string, keywords []string) (domain.AggregateResult, error) {
	keywords = normalizeKeywords(keywords)
	started := s.clock()

	res := domain.AggregateResult{
		RunID:     uuid.New(),
		UserID:    userID,
		Keywords:  keywords,
		Jobs:      []domain.JobPosting{},
		Failures:  []domain.KeywordFailure{},
		Stats:     []domain.KeywordStat{},
		StartedAt: started,
	}
	if len(keywords) == 0 {
		res.FinishedAt = started
		return res, nil
	}

	log := s.log.With("run_id", res.RunID.String(), "user_id", userID)
	log.Info("aggregation started",
		"keywords", len(keywords),
		"workers", s.concurrency,
		"max_retries", s.fetcher.Config().MaxRetries,
	)

	merger := NewMerger()
	var mu sync.Mutex

	err := Dispatch(ctx, keywords, s.concurrency, s.fetcher.Fetch, func(kw string, fr FetchResult) {
		admitted := merger.Add(kw, fr.Postings)

		stat := domain.KeywordStat{
			Keyword:  kw,
			Fetched:  len(fr.Postings),
			Admitted: admitted,
			Attempts: fr.Attempts,
		}

		mu.Lock()
		defer mu.Unlock()
		if fr.Err != nil {
			stat.Err = fr.Err.Error()
			res.Failures = append(res.Failures, domain.KeywordFailure{
				Keyword:  kw,
				Attempts: fr.Attempts,
				Err:      fr.Err.Error(),
			})
		}
		res.Stats = append(res.Stats, stat)
	})

	res.Jobs = merger.Jobs()
	res.FinishedAt = s.clock()
	sort.Slice(res.Stats, func(i, j int) bool { return res.Stats[i].Keyword < res.Stats[j].Keyword })
	sort.Slice(res.Failures, func(i, j int) bool { return res.Failures[i].Keyword < res.Failures[j].Keyword })

	if err != nil {
		log.Warn("aggregation interrupted", "error", err, "jobs", merger.Len())
		return res, fmt.Errorf("job.Service: aggregation interrupted: %w", err)
	}

	log.Info("aggregation finished",
		"jobs", len(res.Jobs),
		"failures", len(res.Failures),
		"duration", res.FinishedAt.Sub(started),
	)

	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, res.Run()); err != nil {
			log.Warn("failed to record search run", "error", err)
		}
	}

	return res, nil
}

func normalizeKeywords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
