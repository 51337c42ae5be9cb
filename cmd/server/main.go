package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/internal/mcp"
	"github.com/honeycarbs/jobfeed/pkg/logging"
	"github.com/honeycarbs/jobfeed/pkg/shutdown"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	res, cleanup, err := mcp.InitializeResources(initCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res, cleanup)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("job feed server initialized and starting",
		"addr", cfg.Addr(),
		"concurrency", cfg.Fetch.Concurrency,
		"max_retries", cfg.Fetch.MaxRetries,
	)

	if err := srv.Run(); err != nil {
		logger.Error("job feed server exited with error", "err", err)
	} else {
		logger.Info("job feed server stopped")
	}
}
