//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/internal/domain/feed"
	"github.com/honeycarbs/jobfeed/internal/domain/job"
	"github.com/honeycarbs/jobfeed/internal/repository"
	storagemongo "github.com/honeycarbs/jobfeed/internal/storage/mongo"
	"github.com/honeycarbs/jobfeed/pkg/jobicy"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Infrastructure - MongoDB
		provideMongoClient,
		provideResumeRepository,
		wire.Bind(new(repository.ResumeRepository), new(*storagemongo.ResumeRepository)),

		// Infrastructure - Jobicy
		provideJobicyConfig,
		jobicy.NewClient,
		provideJobProvider,

		// Keyword history (Neo4j or no-op)
		provideKeywordHistory,
		provideRunRecorder,

		// Services
		provideFetcher,
		providePoolSize,
		job.NewServiceWithDeps,
		feed.NewService,

		provideSheetsExporter,
		newResources,
	)

	return nil, nil, nil
}
