package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

const defaultTopKeywords = 20

const topKeywordsQuery = `
	MATCH (:User {id: $userId})-[:RAN]->(r:SearchRun)-[q:QUERIED]->(k:Keyword)
	RETURN k.value AS keyword,
	       count(r) AS runs,
	       sum(q.fetched) AS fetched,
	       sum(q.admitted) AS admitted,
	       sum(CASE WHEN q.error <> "" THEN 1 ELSE 0 END) AS failures,
	       max(r.startedAt) AS lastRun
	ORDER BY admitted DESC, runs DESC, keyword ASC
	LIMIT $limit
`

// TopKeywords returns the user's most productive keywords across runs
func (r *KeywordRepository) TopKeywords(ctx context.Context, userID string, limit int) ([]domain.KeywordUsage, error) {
	if userID == "" {
		userID = anonymousUser
	}
	if limit <= 0 {
		limit = defaultTopKeywords
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, topKeywordsQuery, map[string]any{
			"userId": userID,
			"limit":  int64(limit),
		})
		if err != nil {
			return nil, err
		}
		return parseUsageRecords(ctx, result)
	})
	if err != nil {
		return nil, err
	}

	return out.([]domain.KeywordUsage), nil
}

func parseUsageRecords(ctx context.Context, records neo4j.ResultWithContext) ([]domain.KeywordUsage, error) {
	usage := make([]domain.KeywordUsage, 0)

	for records.Next(ctx) {
		usage = append(usage, parseUsage(records.Record()))
	}

	return usage, records.Err()
}

func parseUsage(record *neo4j.Record) domain.KeywordUsage {
	return domain.KeywordUsage{
		Keyword:  getRecordString(record, "keyword"),
		Runs:     getRecordInt(record, "runs"),
		Fetched:  getRecordInt(record, "fetched"),
		Admitted: getRecordInt(record, "admitted"),
		Failures: getRecordInt(record, "failures"),
		LastRun:  getRecordTime(record, "lastRun"),
	}
}

func getRecordString(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func getRecordInt(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func getRecordTime(record *neo4j.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}
	}
	if t, ok := val.(time.Time); ok {
		return t
	}
	if dt, ok := val.(neo4j.LocalDateTime); ok {
		return dt.Time()
	}
	return time.Time{}
}
