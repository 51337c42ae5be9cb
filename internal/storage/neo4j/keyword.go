package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/repository"
	pkgneo4j "github.com/honeycarbs/jobfeed/pkg/neo4j"
)

// anonymousUser owns runs started without a user id
const anonymousUser = "anonymous"

var _ repository.KeywordHistoryRepository = (*KeywordRepository)(nil)

// KeywordRepository records search runs as a keyword graph:
// (:User)-[:RAN]->(:SearchRun)-[:QUERIED]->(:Keyword)
type KeywordRepository struct {
	client *pkgneo4j.Client
}

// NewKeywordRepository creates a KeywordRepository with a Neo4j client
func NewKeywordRepository(client *pkgneo4j.Client) *KeywordRepository {
	return &KeywordRepository{
		client: client,
	}
}

const recordRunQuery = `
	MERGE (u:User {id: $userId})
	CREATE (r:SearchRun {
		id: $runId,
		startedAt: $startedAt,
		finishedAt: $finishedAt,
		totalJobs: $totalJobs
	})
	MERGE (u)-[:RAN]->(r)
	WITH r
	UNWIND $stats AS stat
	MERGE (k:Keyword {value: stat.keyword})
	CREATE (r)-[:QUERIED {
		fetched: stat.fetched,
		admitted: stat.admitted,
		attempts: stat.attempts,
		error: stat.error
	}]->(k)
`

// RecordRun stores one run and the keywords it queried
func (r *KeywordRepository) RecordRun(ctx context.Context, run domain.SearchRun) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, recordRunQuery, runParams(run))
		if err != nil {
			return nil, fmt.Errorf("failed to execute search run query: %w", err)
		}
		return result.Consume(ctx)
	})

	return err
}

func runParams(run domain.SearchRun) map[string]any {
	userID := run.UserID
	if userID == "" {
		userID = anonymousUser
	}

	stats := make([]map[string]any, 0, len(run.Stats))
	for _, s := range run.Stats {
		stats = append(stats, map[string]any{
			"keyword":  s.Keyword,
			"fetched":  int64(s.Fetched),
			"admitted": int64(s.Admitted),
			"attempts": int64(s.Attempts),
			"error":    s.Err,
		})
	}

	return map[string]any{
		"userId":     userID,
		"runId":      run.ID.String(),
		"startedAt":  run.StartedAt.UTC(),
		"finishedAt": run.FinishedAt.UTC(),
		"totalJobs":  int64(run.TotalJobs),
		"stats":      stats,
	}
}
