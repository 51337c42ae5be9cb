package jobicy

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/honeycarbs/jobfeed/internal/domain"
	jobdomain "github.com/honeycarbs/jobfeed/internal/domain/job"
	"github.com/honeycarbs/jobfeed/pkg/jobicy"
)

// Source tags every posting this provider returns
const Source = "jobicy"

// searchClient describes the subset of the Jobicy client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, tag string) ([]jobicy.Job, error)
}

// Provider implements job.Provider using the Jobicy API
type Provider struct {
	client searchClient
}

// NewProvider builds a Jobicy provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jobicy provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Source
}

// Search queries Jobicy and returns normalized postings. HTTP 429 is
// reported as job.ErrThrottled.
func (p *Provider) Search(ctx context.Context, keyword string) ([]domain.JobPosting, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("jobicy provider: client is nil")
	}

	respJobs, err := p.client.SearchJobs(ctx, keyword)
	if err != nil {
		var statusErr *jobicy.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %w", jobdomain.ErrThrottled, err)
		}
		return nil, err
	}

	out := make([]domain.JobPosting, 0, len(respJobs))
	for _, j := range respJobs {
		out = append(out, domain.JobPosting{
			ID:          j.ID,
			URL:         j.URL,
			Title:       j.Title,
			CompanyName: j.CompanyName,
			CompanyLogo: j.CompanyLogo,
			JobType:     j.JobType,
			JobLevel:    j.JobLevel,
			Description: j.Description,
			PublishedAt: j.PubDate,
			Source:      Source,
			Excerpt:     j.Excerpt,
		})
	}

	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)
