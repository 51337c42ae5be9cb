package mcp

import (
	"context"
	"errors"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/domain/feed"
	"github.com/honeycarbs/jobfeed/internal/domain/job"
	"github.com/honeycarbs/jobfeed/internal/mcp/tools"
	"github.com/honeycarbs/jobfeed/internal/repository"
)

var errSheetsNotConfigured = errors.New("sheets export is not configured: set GOOGLE_SHEETS_CREDENTIALS_PATH")

// Resources holds the services exposed over HTTP and MCP
type Resources struct {
	Feed    *feed.Service
	Jobs    job.Service
	History repository.KeywordHistoryRepository
	Sheets  tools.SheetsExporter
}

func newResources(
	feedService *feed.Service,
	jobService job.Service,
	history repository.KeywordHistoryRepository,
	sheets tools.SheetsExporter,
) *Resources {
	return &Resources{
		Feed:    feedService,
		Jobs:    jobService,
		History: history,
		Sheets:  sheets,
	}
}

// stubKeywordHistory stands in when Neo4j is not configured
type stubKeywordHistory struct{}

func (stubKeywordHistory) RecordRun(context.Context, domain.SearchRun) error {
	return nil
}

func (stubKeywordHistory) TopKeywords(context.Context, string, int) ([]domain.KeywordUsage, error) {
	return []domain.KeywordUsage{}, nil
}

type stubSheetsExporter struct{}

func (stubSheetsExporter) Export(_ context.Context, req tools.ExportRequest) (tools.SheetsExportResult, error) {
	return tools.SheetsExportResult{SpreadsheetID: req.Sheet.SpreadsheetID, Tab: req.Sheet.Tab}, errSheetsNotConfigured
}
