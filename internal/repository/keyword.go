package repository

import (
	"context"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// KeywordHistoryRepository records search runs and reads keyword usage back
type KeywordHistoryRepository interface {
	RecordRun(ctx context.Context, run domain.SearchRun) error
	TopKeywords(ctx context.Context, userID string, limit int) ([]domain.KeywordUsage, error)
}
