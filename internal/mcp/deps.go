package mcp

import (
	"context"
	"time"

	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/internal/domain/job"
	jobicyProvider "github.com/honeycarbs/jobfeed/internal/domain/job/providers/jobicy"
	"github.com/honeycarbs/jobfeed/internal/mcp/tools"
	"github.com/honeycarbs/jobfeed/internal/repository"
	storagemongo "github.com/honeycarbs/jobfeed/internal/storage/mongo"
	storageneo4j "github.com/honeycarbs/jobfeed/internal/storage/neo4j"
	"github.com/honeycarbs/jobfeed/pkg/jobicy"
	"github.com/honeycarbs/jobfeed/pkg/logging"
	pkgmongo "github.com/honeycarbs/jobfeed/pkg/mongo"
	pkgneo4j "github.com/honeycarbs/jobfeed/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/jobfeed/pkg/sheets"
)

const closeTimeout = 5 * time.Second

// provideMongoClient connects to the résumé store; the cleanup disconnects it
func provideMongoClient(ctx context.Context, cfg config.Config, log *logging.Logger) (*pkgmongo.Client, func(), error) {
	client, err := pkgmongo.NewClient(ctx, pkgmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("MongoDB client initialized", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Warn("failed to disconnect MongoDB", "err", err)
		}
	}
	return client, cleanup, nil
}

func provideResumeRepository(client *pkgmongo.Client, cfg config.Config) *storagemongo.ResumeRepository {
	return storagemongo.NewResumeRepository(client, cfg.Mongo.Collection, cfg.Mongo.UserField)
}

func provideJobicyConfig(cfg config.Config) jobicy.Config {
	return jobicy.Config{
		BaseURL:  cfg.Jobs.BaseURL,
		PageSize: cfg.Jobs.PageSize,
	}
}

func provideJobProvider(client *jobicy.Client) (job.Provider, error) {
	provider, err := jobicyProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func provideFetcher(provider job.Provider, cfg config.Config, log *logging.Logger) (*job.Fetcher, error) {
	return job.NewFetcher(provider, job.FetchConfig{
		MaxRetries:        cfg.Fetch.MaxRetries,
		RetryDelay:        cfg.Fetch.RetryDelay,
		JitterMin:         cfg.Fetch.JitterMin,
		JitterMax:         cfg.Fetch.JitterMax,
		RequestTimeout:    cfg.Fetch.RequestTimeout,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	}, job.WithFetchLogger(log))
}

func providePoolSize(cfg config.Config) job.PoolSize {
	return job.PoolSize(cfg.Fetch.Concurrency)
}

// provideKeywordHistory connects to Neo4j when configured. Any failure
// degrades to a no-op history so the feed keeps serving.
func provideKeywordHistory(ctx context.Context, cfg config.Config, log *logging.Logger) (repository.KeywordHistoryRepository, func()) {
	if !cfg.Neo4j.Enabled() {
		log.Info("Neo4j not configured, keyword history disabled")
		return stubKeywordHistory{}, func() {}
	}

	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		log.Warn("failed to initialize Neo4j, keyword history disabled", "err", err)
		return stubKeywordHistory{}, func() {}
	}
	log.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Warn("failed to close Neo4j driver", "err", err)
		}
	}
	return storageneo4j.NewKeywordRepository(client), cleanup
}

func provideRunRecorder(history repository.KeywordHistoryRepository) job.RunRecorder {
	return history
}

func provideSheetsExporter(ctx context.Context, cfg config.Config, log *logging.Logger) tools.SheetsExporter {
	if !cfg.Sheets.Enabled() {
		return stubSheetsExporter{}
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		log.Warn("failed to initialize Sheets client, export disabled", "err", err)
		return stubSheetsExporter{}
	}
	log.Info("Sheets client initialized")
	return newSheetsExporter(client)
}
