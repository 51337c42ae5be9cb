package repository

import (
	"context"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// ResumeRepository loads stored résumés
type ResumeRepository interface {
	// FindByUserID returns every résumé owned by the user. An unknown
	// user yields an empty slice, not an error.
	FindByUserID(ctx context.Context, userID string) ([]domain.ResumeDocument, error)
}
