package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

type feedStub struct {
	result   domain.AggregateResult
	keywords []string
	err      error
}

func (f *feedStub) FetchJobs(context.Context, string) (domain.AggregateResult, error) {
	return f.result, f.err
}

func (f *feedStub) Keywords(context.Context, string) ([]string, error) {
	return f.keywords, f.err
}

type searcherStub struct {
	got []string
}

func (s *searcherStub) Search(_ context.Context, userID string, keywords []string) (domain.AggregateResult, error) {
	s.got = keywords
	return domain.AggregateResult{RunID: uuid.New(), UserID: userID, Keywords: keywords, Jobs: []domain.JobPosting{{ID: "1"}}}, nil
}

type historyStub struct {
	usage     []domain.KeywordUsage
	gotLimit  int
	returnErr error
}

func (h *historyStub) TopKeywords(_ context.Context, _ string, limit int) ([]domain.KeywordUsage, error) {
	h.gotLimit = limit
	return h.usage, h.returnErr
}

type exporterStub struct {
	got ExportRequest
	err error
}

func (e *exporterStub) Export(_ context.Context, req ExportRequest) (SheetsExportResult, error) {
	e.got = req
	return SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           req.Sheet.Tab,
		WrittenRows:   len(req.Jobs),
		CompletedAt:   time.Now().UTC(),
	}, e.err
}

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "jobfeed-test", Version: "0.0.1"}, nil)
	Register(server, nil, opts...)

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "jobfeed-test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func call(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestFetchJobsTool(t *testing.T) {
	feed := &feedStub{result: domain.AggregateResult{
		RunID:    uuid.New(),
		Keywords: []string{"go", "rust"},
		Jobs:     []domain.JobPosting{{ID: "1"}, {ID: "2"}},
		Failures: []domain.KeywordFailure{{Keyword: "rust", Attempts: 3, Err: "throttled"}},
	}}
	session := connect(t, WithFetchJobs(feed))

	res := call(t, session, "fetch_jobs", map[string]any{"user_id": "u1"})

	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "2 job(s) from 2 keyword(s)")
	assert.Contains(t, text(t, res), "failed keywords: rust")

	structured, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.Len(t, structured["jobs"], 2)
}

func TestFetchJobsToolReportsDomainErrors(t *testing.T) {
	session := connect(t, WithFetchJobs(&feedStub{err: domain.ErrNoResumes}))

	res := call(t, session, "fetch_jobs", map[string]any{"user_id": "u1"})

	assert.True(t, res.IsError)
	assert.Equal(t, domain.ErrNoResumes.Error(), text(t, res))
}

func TestSearchKeywordsTool(t *testing.T) {
	searcher := &searcherStub{}
	session := connect(t, WithSearchKeywords(searcher))

	res := call(t, session, "search_keywords", map[string]any{"keywords": []string{"go", " ", "kotlin"}})

	assert.False(t, res.IsError)
	assert.Equal(t, []string{"go", "kotlin"}, searcher.got)
}

func TestExtractKeywordsToolSortsOutput(t *testing.T) {
	session := connect(t, WithExtractKeywords(&feedStub{keywords: []string{"react", "go"}}))

	res := call(t, session, "extract_keywords", map[string]any{"user_id": "u1"})

	assert.Equal(t, "[extract_keywords] 2 keyword(s): go, react", text(t, res))
}

func TestKeywordHistoryTool(t *testing.T) {
	history := &historyStub{usage: []domain.KeywordUsage{{Keyword: "go", Runs: 3, Admitted: 12}}}
	session := connect(t, WithKeywordHistory(history))

	res := call(t, session, "keyword_history", map[string]any{"user_id": "u1"})

	assert.Equal(t, defaultHistoryLimit, history.gotLimit)
	assert.Contains(t, text(t, res), "go: 12 admitted over 3 run(s)")

	history.returnErr = errors.New("neo4j unavailable")
	res = call(t, session, "keyword_history", map[string]any{"user_id": "u1", "limit": 5})
	assert.True(t, res.IsError)
	assert.Equal(t, 5, history.gotLimit)
}

func TestSheetsExportTool(t *testing.T) {
	feed := &feedStub{result: domain.AggregateResult{RunID: uuid.New(), Jobs: []domain.JobPosting{{ID: "1"}, {ID: "2"}, {ID: "3"}}}}
	exporter := &exporterStub{}
	session := connect(t, WithSheetsExport(feed, exporter))

	res := call(t, session, "sheets_export", map[string]any{
		"user_id":   "u1",
		"sheet":     map[string]any{"spreadsheet_id": "sheet-1", "tab": "Jobs"},
		"clear_tab": true,
	})

	assert.False(t, res.IsError)
	assert.True(t, exporter.got.ClearTab)
	assert.Len(t, exporter.got.Jobs, 3)
	assert.Contains(t, text(t, res), "wrote 3 row(s) to sheet-1")
}

func TestSheetsExportToolSurfacesExporterErrors(t *testing.T) {
	feed := &feedStub{result: domain.AggregateResult{RunID: uuid.New(), Jobs: []domain.JobPosting{{ID: "1"}}}}
	session := connect(t, WithSheetsExport(feed, &exporterStub{err: errors.New("sheets: quota exceeded")}))

	res := call(t, session, "sheets_export", map[string]any{
		"user_id": "u1",
		"sheet":   map[string]any{"spreadsheet_id": "sheet-1"},
	})

	assert.True(t, res.IsError)
	assert.Equal(t, "sheets: quota exceeded", text(t, res))
}
