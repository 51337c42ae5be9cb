package tools

import (
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// errorResult reports a tool failure to the client without failing the call
func errorResult(err error) *sdkmcp.CallToolResult {
	res := textResult(err.Error())
	res.IsError = true
	return res
}

// AggregateSummary is the structured output of the search tools
type AggregateSummary struct {
	RunID    string                  `json:"run_id" jsonschema:"Identifier of the aggregation run"`
	Keywords []string                `json:"keywords" jsonschema:"Keywords that were queried"`
	Jobs     []domain.JobPosting     `json:"jobs" jsonschema:"Deduplicated postings"`
	Failures []domain.KeywordFailure `json:"failures,omitempty" jsonschema:"Keywords that produced no postings because of an error"`
}

func summarize(res domain.AggregateResult) AggregateSummary {
	return AggregateSummary{
		RunID:    res.RunID.String(),
		Keywords: res.Keywords,
		Jobs:     res.Jobs,
		Failures: res.Failures,
	}
}

func describeRun(tool string, res domain.AggregateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] run %s: %d job(s) from %d keyword(s)", tool, res.RunID, len(res.Jobs), len(res.Keywords))
	if len(res.Failures) > 0 {
		failed := make([]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			failed = append(failed, f.Keyword)
		}
		fmt.Fprintf(&b, "; failed keywords: %s", strings.Join(failed, ", "))
	}
	return b.String()
}
