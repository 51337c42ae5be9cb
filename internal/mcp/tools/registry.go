package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// FeedService runs the pipeline for a stored user
type FeedService interface {
	FetchJobs(ctx context.Context, userID string) (domain.AggregateResult, error)
	Keywords(ctx context.Context, userID string) ([]string, error)
}

// KeywordSearcher runs the pipeline for explicit keywords
type KeywordSearcher interface {
	Search(ctx context.Context, userID string, keywords []string) (domain.AggregateResult, error)
}

// KeywordHistory reads recorded keyword usage
type KeywordHistory interface {
	TopKeywords(ctx context.Context, userID string, limit int) ([]domain.KeywordUsage, error)
}

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
}

// Register applies the provided tool options
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}
