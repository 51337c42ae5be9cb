package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

const defaultHistoryLimit = 20

// ExtractKeywordsParams defines the arguments for the extract_keywords tool
type ExtractKeywordsParams struct {
	UserID string `json:"user_id" jsonschema:"Owner of the stored resumes"`
}

// ExtractKeywordsResult lists the keywords a user's resumes produce
type ExtractKeywordsResult struct {
	UserID   string   `json:"user_id"`
	Keywords []string `json:"keywords" jsonschema:"Sorted keyword set"`
}

// KeywordHistoryParams defines the arguments for the keyword_history tool
type KeywordHistoryParams struct {
	UserID string `json:"user_id" jsonschema:"User whose recorded runs are read"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of keywords to return"`
}

// KeywordHistoryResult describes keyword usage across recorded runs
type KeywordHistoryResult struct {
	UserID   string                `json:"user_id"`
	Keywords []domain.KeywordUsage `json:"keywords"`
}

type extractKeywordsTool struct {
	feed   FeedService
	logger *logging.Logger
}

// WithExtractKeywords registers the extract_keywords tool
func WithExtractKeywords(feed FeedService) Option {
	return func(reg *registry) {
		handler := extractKeywordsTool{feed: feed, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "extract_keywords",
			Description: "Show the search keywords derived from a user's stored resumes",
		}, handler.handle)
	}
}

func (t extractKeywordsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ExtractKeywordsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.feed == nil {
		return nil, nil, fmt.Errorf("feed service not configured")
	}

	keywords, err := t.feed.Keywords(ctx, params.UserID)
	if err != nil {
		t.logger.Warn("extract_keywords failed", "user_id", params.UserID, "err", err)
		return errorResult(err), nil, nil
	}
	sort.Strings(keywords)

	result := ExtractKeywordsResult{UserID: params.UserID, Keywords: keywords}
	msg := fmt.Sprintf("[extract_keywords] %d keyword(s): %s", len(keywords), strings.Join(keywords, ", "))
	return textResult(msg), result, nil
}

type keywordHistoryTool struct {
	history KeywordHistory
	logger  *logging.Logger
}

// WithKeywordHistory registers the keyword_history tool
func WithKeywordHistory(history KeywordHistory) Option {
	return func(reg *registry) {
		handler := keywordHistoryTool{history: history, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "keyword_history",
			Description: "List a user's most productive keywords across recorded search runs",
		}, handler.handle)
	}
}

func (t keywordHistoryTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params KeywordHistoryParams) (*sdkmcp.CallToolResult, any, error) {
	if t.history == nil {
		return nil, nil, fmt.Errorf("keyword history not configured")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	usage, err := t.history.TopKeywords(ctx, params.UserID, limit)
	if err != nil {
		t.logger.Error("keyword_history failed", "user_id", params.UserID, "err", err)
		return errorResult(fmt.Errorf("failed to read keyword history: %w", err)), nil, nil
	}

	result := KeywordHistoryResult{UserID: params.UserID, Keywords: usage}
	if len(usage) == 0 {
		return textResult("[keyword_history] no recorded runs"), result, nil
	}

	lines := make([]string, 0, len(usage))
	for _, u := range usage {
		lines = append(lines, fmt.Sprintf("%s: %d admitted over %d run(s)", u.Keyword, u.Admitted, u.Runs))
	}
	return textResult("[keyword_history]\n" + strings.Join(lines, "\n")), result, nil
}
