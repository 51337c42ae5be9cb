package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUserIDRequired is returned when a request carries no user id
	ErrUserIDRequired = errors.New("userId is required")
	// ErrNoResumes is returned when the user has no stored résumés
	ErrNoResumes = errors.New("no resumes found for user")
)

// RunID identifies one aggregation run
type RunID = uuid.UUID

// SkillCategory groups résumé skill items under a heading
type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// ResumeDocument is the subset of a stored résumé the pipeline reads
type ResumeDocument struct {
	ID      string          `json:"id"`
	UserID  string          `json:"userId"`
	Skills  []SkillCategory `json:"skills"`
	Summary string          `json:"summary"`
}

// JobPosting is a normalized upstream job listing
type JobPosting struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"jobTitle"`
	CompanyName   string `json:"companyName"`
	CompanyLogo   string `json:"companyLogo"`
	JobType       string `json:"jobType"`
	JobLevel      string `json:"jobLevel"`
	Description   string `json:"jobDescription"`
	PublishedAt   string `json:"pubDate"`
	Source        string `json:"source"`
	SourceKeyword string `json:"sourceKeyword"`
	Excerpt       string `json:"excerpt,omitempty"`
}

// KeywordFailure records a keyword whose fetch ended without postings
type KeywordFailure struct {
	Keyword  string `json:"keyword"`
	Attempts int    `json:"attempts"`
	Err      string `json:"error"`
}

// KeywordStat summarizes one keyword within a run
type KeywordStat struct {
	Keyword  string `json:"keyword"`
	Fetched  int    `json:"fetched"`
	Admitted int    `json:"admitted"`
	Attempts int    `json:"attempts"`
	Err      string `json:"error,omitempty"`
}

// AggregateResult is the outcome of one aggregation run
type AggregateResult struct {
	RunID      RunID            `json:"runId"`
	UserID     string           `json:"userId,omitempty"`
	Keywords   []string         `json:"keywords"`
	Jobs       []JobPosting     `json:"jobs"`
	Failures   []KeywordFailure `json:"failures"`
	Stats      []KeywordStat    `json:"stats"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
}

// SearchRun is the persisted summary of a run, without the postings
type SearchRun struct {
	ID         RunID
	UserID     string
	Stats      []KeywordStat
	TotalJobs  int
	StartedAt  time.Time
	FinishedAt time.Time
}

// KeywordUsage is an aggregated view over recorded runs
type KeywordUsage struct {
	Keyword  string    `json:"keyword"`
	Runs     int       `json:"runs"`
	Fetched  int       `json:"fetched"`
	Admitted int       `json:"admitted"`
	Failures int       `json:"failures"`
	LastRun  time.Time `json:"lastRun"`
}

// Run returns the persisted summary of the result
func (r AggregateResult) Run() SearchRun {
	return SearchRun{
		ID:         r.RunID,
		UserID:     r.UserID,
		Stats:      r.Stats,
		TotalJobs:  len(r.Jobs),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
