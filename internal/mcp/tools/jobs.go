package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// FetchJobsParams defines the arguments for the fetch_jobs tool
type FetchJobsParams struct {
	UserID string `json:"user_id" jsonschema:"Owner of the stored resumes"`
}

// SearchKeywordsParams defines the arguments for the search_keywords tool
type SearchKeywordsParams struct {
	Keywords []string `json:"keywords" jsonschema:"Keywords to query, one upstream request each"`
	UserID   string   `json:"user_id,omitempty" jsonschema:"Optional user the run is recorded under"`
}

type fetchJobsTool struct {
	feed   FeedService
	logger *logging.Logger
}

// WithFetchJobs registers the fetch_jobs tool
func WithFetchJobs(feed FeedService) Option {
	return func(reg *registry) {
		handler := fetchJobsTool{feed: feed, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "fetch_jobs",
			Description: "Aggregate remote job postings for every keyword found in a user's stored resumes",
		}, handler.handle)
	}
}

func (t fetchJobsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params FetchJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.feed == nil {
		return nil, nil, fmt.Errorf("feed service not configured")
	}

	res, err := t.feed.FetchJobs(ctx, params.UserID)
	if err != nil {
		t.logger.Warn("fetch_jobs failed", "user_id", params.UserID, "err", err)
		return errorResult(err), nil, nil
	}

	t.logger.Info("fetch_jobs completed",
		"user_id", params.UserID,
		"run_id", res.RunID.String(),
		"jobs", len(res.Jobs),
		"failures", len(res.Failures),
	)
	return textResult(describeRun("fetch_jobs", res)), summarize(res), nil
}

type searchKeywordsTool struct {
	jobs   KeywordSearcher
	logger *logging.Logger
}

// WithSearchKeywords registers the search_keywords tool
func WithSearchKeywords(jobs KeywordSearcher) Option {
	return func(reg *registry) {
		handler := searchKeywordsTool{jobs: jobs, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "search_keywords",
			Description: "Aggregate remote job postings for an explicit keyword list",
		}, handler.handle)
	}
}

func (t searchKeywordsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchKeywordsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.jobs == nil {
		return nil, nil, fmt.Errorf("job service not configured")
	}

	keywords := make([]string, 0, len(params.Keywords))
	for _, kw := range params.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return textResult("[search_keywords] no keywords provided"), AggregateSummary{Keywords: []string{}}, nil
	}

	res, err := t.jobs.Search(ctx, params.UserID, keywords)
	if err != nil {
		t.logger.Warn("search_keywords failed", "keywords", len(keywords), "err", err)
		return errorResult(err), nil, nil
	}

	return textResult(describeRun("search_keywords", res)), summarize(res), nil
}
