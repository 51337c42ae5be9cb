package job

import (
	"context"
	"errors"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// ErrThrottled marks an upstream rate-limit response (HTTP 429)
var ErrThrottled = errors.New("upstream throttled the request")

// Provider represents an external job data source
type Provider interface {
	// e.g. "jobicy"
	Name() string

	// Search returns normalized postings for one keyword. Rate limiting
	// must be reported as an error wrapping ErrThrottled.
	Search(ctx context.Context, keyword string) ([]domain.JobPosting, error)
}
