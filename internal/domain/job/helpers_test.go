package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

type searchFunc func(ctx context.Context, keyword string, call int) ([]domain.JobPosting, error)

type fakeProvider struct {
	mu     sync.Mutex
	calls  map[string]int
	search searchFunc
}

func newFakeProvider(fn searchFunc) *fakeProvider {
	return &fakeProvider{calls: make(map[string]int), search: fn}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(ctx context.Context, keyword string) ([]domain.JobPosting, error) {
	p.mu.Lock()
	p.calls[keyword]++
	call := p.calls[keyword]
	p.mu.Unlock()

	return p.search(ctx, keyword, call)
}

func (p *fakeProvider) Calls(keyword string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[keyword]
}

func (p *fakeProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

type sleepRecorder struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (r *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) Durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.slept...)
}

func fixedDelay(d time.Duration) DelayFunc {
	return func(_, _ time.Duration) time.Duration { return d }
}

func newTestFetcher(t *testing.T, p Provider, cfg FetchConfig, opts ...FetcherOption) *Fetcher {
	t.Helper()
	opts = append([]FetcherOption{
		WithDelayFunc(fixedDelay(0)),
		WithSleepFunc(func(ctx context.Context, _ time.Duration) error { return ctx.Err() }),
	}, opts...)

	f, err := NewFetcher(p, cfg, opts...)
	require.NoError(t, err)
	return f
}

func posting(id, url string) domain.JobPosting {
	return domain.JobPosting{ID: id, URL: url, Title: "job " + id, Source: "fake"}
}
