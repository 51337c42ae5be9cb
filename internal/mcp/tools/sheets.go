package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// SheetTarget names the destination spreadsheet
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write into"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	UserID   string      `json:"user_id" jsonschema:"User whose job feed is exported"`
	Sheet    SheetTarget `json:"sheet" jsonschema:"Destination sheet information"`
	ClearTab bool        `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
}

// ExportRequest is what the exporter writes
type ExportRequest struct {
	Sheet    SheetTarget
	ClearTab bool
	Jobs     []domain.JobPosting
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	RunID         string    `json:"run_id,omitempty" jsonschema:"Aggregation run that produced the rows"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

// SheetsExporter writes postings to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, req ExportRequest) (SheetsExportResult, error)
}

type sheetsExportTool struct {
	feed     FeedService
	exporter SheetsExporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(feed FeedService, exporter SheetsExporter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{feed: feed, exporter: exporter, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Run the job feed for a user and write the postings to Google Sheets",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.feed == nil || t.exporter == nil {
		return nil, nil, fmt.Errorf("sheets export not configured")
	}
	if params.Sheet.SpreadsheetID == "" {
		return errorResult(fmt.Errorf("sheet.spreadsheet_id is required")), nil, nil
	}

	run, err := t.feed.FetchJobs(ctx, params.UserID)
	if err != nil {
		t.logger.Warn("sheets_export: fetch failed", "user_id", params.UserID, "err", err)
		return errorResult(err), nil, nil
	}

	result, err := t.exporter.Export(ctx, ExportRequest{
		Sheet:    params.Sheet,
		ClearTab: params.ClearTab,
		Jobs:     run.Jobs,
	})
	result.RunID = run.RunID.String()
	if err != nil {
		t.logger.Error("sheets_export failed",
			"spreadsheet_id", params.Sheet.SpreadsheetID,
			"run_id", result.RunID,
			"err", err,
		)
		return errorResult(err), result, nil
	}

	msg := fmt.Sprintf("[sheets_export] wrote %d row(s) to %s (tab %q)", result.WrittenRows, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
