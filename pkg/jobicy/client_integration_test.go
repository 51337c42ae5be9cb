package jobicy

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSearchJobsIntegration(t *testing.T) {
	if os.Getenv("JOBICY_INTEGRATION") == "" {
		t.Skip("JOBICY_INTEGRATION must be set to run this test")
	}

	tag := os.Getenv("JOBICY_TAG")
	if tag == "" {
		tag = "golang"
	}

	client, err := NewClient(Config{
		BaseURL:  os.Getenv("JOBS_API_BASE_URL"),
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	jobs, err := client.SearchJobs(ctx, tag)
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if len(jobs) == 0 {
		t.Logf("Jobicy search for %q returned zero jobs", tag)
		return
	}

	for i, job := range jobs {
		if i >= 5 {
			break
		}
		t.Logf("Result %d: %s @ %s (%s)", i+1, job.Title, job.CompanyName, job.URL)
	}
	t.Logf("Jobicy search returned %d jobs", len(jobs))
}
