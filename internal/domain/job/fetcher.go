package job

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// FetchConfig controls retry, jitter and pacing for upstream queries
type FetchConfig struct {
	MaxRetries        int
	RetryDelay        time.Duration
	JitterMin         time.Duration
	JitterMax         time.Duration
	RequestTimeout    time.Duration
	RequestsPerSecond float64
}

// DefaultFetchConfig returns the stock fetch settings
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		MaxRetries:     3,
		RetryDelay:     time.Second,
		JitterMin:      500 * time.Millisecond,
		JitterMax:      1500 * time.Millisecond,
		RequestTimeout: 15 * time.Second,
	}
}

// FetchResult is the outcome for one keyword. Postings is never nil;
// Err is set when the keyword produced nothing because of a failure.
type FetchResult struct {
	Postings []domain.JobPosting
	Attempts int
	Err      error
}

// DelayFunc picks the pre-request jitter within [lo, hi]
type DelayFunc func(lo, hi time.Duration) time.Duration

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// FetcherOption configures Fetcher
type FetcherOption func(*Fetcher)

// WithDelayFunc replaces the random jitter source
func WithDelayFunc(fn DelayFunc) FetcherOption {
	return func(f *Fetcher) {
		f.delay = fn
	}
}

// WithSleepFunc replaces the context-aware sleep
func WithSleepFunc(fn SleepFunc) FetcherOption {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// WithFetchLogger sets the fetcher logger
func WithFetchLogger(log *logging.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = log
	}
}

// Fetcher queries a provider for one keyword at a time with jitter,
// an optional shared rate limit and linear backoff on throttling.
type Fetcher struct {
	provider Provider
	cfg      FetchConfig
	delay    DelayFunc
	sleep    SleepFunc
	limiter  *rate.Limiter
	log      *logging.Logger
}

// NewFetcher builds a Fetcher. Zero-valued config fields take defaults.
func NewFetcher(provider Provider, cfg FetchConfig, opts ...FetcherOption) (*Fetcher, error) {
	if provider == nil {
		return nil, fmt.Errorf("job.Fetcher: provider is required")
	}

	def := DefaultFetchConfig()
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.JitterMin < 0 {
		cfg.JitterMin = 0
	}
	if cfg.JitterMax < cfg.JitterMin {
		return nil, fmt.Errorf("job.Fetcher: jitter max %s is below jitter min %s", cfg.JitterMax, cfg.JitterMin)
	}

	f := &Fetcher{
		provider: provider,
		cfg:      cfg,
		delay:    UniformDelay,
		sleep:    Sleep,
		log:      logging.NewNop(),
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Config returns the effective settings
func (f *Fetcher) Config() FetchConfig {
	return f.cfg
}

// Fetch runs up to MaxRetries attempts for keyword. Only throttling is
// retried; every other failure ends the keyword after one attempt.
func (f *Fetcher) Fetch(ctx context.Context, keyword string) FetchResult {
	res := FetchResult{Postings: []domain.JobPosting{}}
	log := f.log.With("keyword", keyword, "provider", f.provider.Name())

	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		res.Attempts = attempt

		if err := f.sleep(ctx, f.delay(f.cfg.JitterMin, f.cfg.JitterMax)); err != nil {
			res.Err = err
			return res
		}
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				res.Err = err
				return res
			}
		}

		postings, err := f.attempt(ctx, keyword)
		if err == nil {
			res.Postings = postings
			res.Err = nil
			log.Debug("keyword fetched", "attempt", attempt, "postings", len(postings))
			return res
		}
		res.Err = err

		if !errors.Is(err, ErrThrottled) {
			log.Warn("keyword fetch failed", "attempt", attempt, "error", err)
			return res
		}

		if attempt < f.cfg.MaxRetries {
			backoff := f.cfg.RetryDelay * time.Duration(attempt)
			log.Info("upstream throttled, backing off", "attempt", attempt, "backoff", backoff)
			if err := f.sleep(ctx, backoff); err != nil {
				res.Err = err
				return res
			}
		}
	}

	log.Warn("keyword fetch gave up after throttling", "attempts", res.Attempts, "error", res.Err)
	return res
}

func (f *Fetcher) attempt(ctx context.Context, keyword string) (postings []domain.JobPosting, err error) {
	defer func() {
		if r := recover(); r != nil {
			postings, err = nil, fmt.Errorf("provider %s panicked: %v", f.provider.Name(), r)
		}
	}()

	if f.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.RequestTimeout)
		defer cancel()
	}

	postings, err = f.provider.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if postings == nil {
		postings = []domain.JobPosting{}
	}
	return postings, nil
}

// UniformDelay returns a random duration in [lo, hi]
func UniformDelay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
}

// Sleep blocks for d unless ctx ends first
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
