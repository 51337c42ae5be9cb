package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/domain/job"
	jobicyProvider "github.com/honeycarbs/jobfeed/internal/domain/job/providers/jobicy"
	"github.com/honeycarbs/jobfeed/pkg/jobicy"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Aggregate postings for explicit keywords",
	Long:  "Query the jobs API for each keyword with retry and jitter, merge the results and print them as JSON.",
	RunE:  runFetch,
}

var (
	fetchKeywords    []string
	fetchConcurrency int
)

func init() {
	fetchCmd.Flags().StringSliceVarP(&fetchKeywords, "keyword", "k", nil, "Keyword to search (repeatable)")
	fetchCmd.Flags().IntVarP(&fetchConcurrency, "concurrency", "c", 0, "Worker count (defaults to FETCH_CONCURRENCY)")
	_ = fetchCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithout(config.RequireMongo)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if fetchConcurrency > 0 {
		cfg.Fetch.Concurrency = fetchConcurrency
	}

	logger := logging.New(logLevel)
	defer func() { _ = logger.Sync() }()

	jobs, err := buildJobService(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := jobs.Search(ctx, "", fetchKeywords)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return printResult(cmd, res)
}

func buildJobService(cfg config.Config, logger *logging.Logger) (job.Service, error) {
	client, err := jobicy.NewClient(jobicy.Config{BaseURL: cfg.Jobs.BaseURL, PageSize: cfg.Jobs.PageSize})
	if err != nil {
		return nil, err
	}
	provider, err := jobicyProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}
	fetcher, err := job.NewFetcher(provider, job.FetchConfig{
		MaxRetries:        cfg.Fetch.MaxRetries,
		RetryDelay:        cfg.Fetch.RetryDelay,
		JitterMin:         cfg.Fetch.JitterMin,
		JitterMax:         cfg.Fetch.JitterMax,
		RequestTimeout:    cfg.Fetch.RequestTimeout,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	}, job.WithFetchLogger(logger))
	if err != nil {
		return nil, err
	}
	return job.NewService(
		job.WithFetcher(fetcher),
		job.WithConcurrency(cfg.Fetch.Concurrency),
		job.WithLogger(logger),
	)
}

func printResult(cmd *cobra.Command, res domain.AggregateResult) error {
	for _, f := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "keyword %q failed after %d attempt(s): %s\n", f.Keyword, f.Attempts, f.Err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Jobs); err != nil {
		return fmt.Errorf("failed to encode jobs: %w", err)
	}
	return nil
}
