package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/mcp/tools"
)

const defaultTab = "Jobs"

var sheetHeader = []any{"Title", "Company", "Type", "Level", "Published", "URL", "Keyword", "Source", "ID"}

// valueWriter is the subset of the Sheets client used for export
type valueWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) error
	UpdateValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) error
	ClearValues(ctx context.Context, spreadsheetID, a1Range string) error
}

type sheetsExporter struct {
	client valueWriter
	clock  func() time.Time
}

func newSheetsExporter(client valueWriter) *sheetsExporter {
	return &sheetsExporter{client: client, clock: time.Now}
}

// Export writes one row per posting. Clearing the tab rewrites the header
// row first; otherwise rows are appended below existing content.
func (e *sheetsExporter) Export(ctx context.Context, req tools.ExportRequest) (tools.SheetsExportResult, error) {
	tab := req.Sheet.Tab
	if tab == "" {
		tab = defaultTab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           tab,
	}

	if req.ClearTab {
		if err := e.client.ClearValues(ctx, req.Sheet.SpreadsheetID, tab+"!A:Z"); err != nil {
			return result, fmt.Errorf("sheets: failed to clear tab: %w", err)
		}
		values := append([][]any{sheetHeader}, jobRows(req.Jobs)...)
		if err := e.client.UpdateValues(ctx, req.Sheet.SpreadsheetID, tab+"!A1", values); err != nil {
			return result, fmt.Errorf("sheets: failed to write rows: %w", err)
		}
	} else if len(req.Jobs) > 0 {
		target := req.Sheet.Range
		if target == "" {
			target = tab + "!A1"
		}
		if err := e.client.AppendValues(ctx, req.Sheet.SpreadsheetID, target, jobRows(req.Jobs)); err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	}

	result.WrittenRows = len(req.Jobs)
	result.CompletedAt = e.clock().UTC()
	if result.WrittenRows == 0 {
		result.Message = "no rows to export"
	} else {
		result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)
	}

	return result, nil
}

func jobRows(jobs []domain.JobPosting) [][]any {
	values := make([][]any, len(jobs))
	for i, j := range jobs {
		values[i] = []any{
			j.Title,
			j.CompanyName,
			j.JobType,
			j.JobLevel,
			j.PublishedAt,
			j.URL,
			j.SourceKeyword,
			j.Source,
			j.ID,
		}
	}
	return values
}

var _ tools.SheetsExporter = (*sheetsExporter)(nil)
