package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/internal/mcp"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Run the full pipeline for a stored user",
	Long:  "Load the user's résumés from MongoDB, extract keywords, aggregate postings and print them as JSON. The run is recorded in Neo4j when configured.",
	RunE:  runUser,
}

var userID string

func init() {
	userCmd.Flags().StringVar(&userID, "id", "", "User ID whose résumés drive the search (required)")
	_ = userCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(userCmd)
}

func runUser(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(logLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize resources: %w", err)
	}
	defer cleanup()

	result, err := res.Feed.FetchJobs(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "run %s: %d job(s) from %d keyword(s)\n", result.RunID, len(result.Jobs), len(result.Keywords))
	return printResult(cmd, result)
}
