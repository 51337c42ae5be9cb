package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/mcp/tools"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll exposes every job feed tool on the server
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) {
	tools.Register(server, r.logger,
		tools.WithFetchJobs(res.Feed),
		tools.WithSearchKeywords(res.Jobs),
		tools.WithExtractKeywords(res.Feed),
		tools.WithKeywordHistory(res.History),
		tools.WithSheetsExport(res.Feed, res.Sheets),
	)
}
