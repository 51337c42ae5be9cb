// Package feed runs the job aggregation pipeline for a stored user.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/domain/job"
	"github.com/honeycarbs/jobfeed/internal/domain/keyword"
	"github.com/honeycarbs/jobfeed/internal/repository"
)

// Service resolves a user's résumés and aggregates postings for them
type Service struct {
	resumes repository.ResumeRepository
	jobs    job.Service
}

// NewService creates a feed service
func NewService(resumes repository.ResumeRepository, jobs job.Service) (*Service, error) {
	if resumes == nil {
		return nil, fmt.Errorf("feed.Service: resume repository is required")
	}
	if jobs == nil {
		return nil, fmt.Errorf("feed.Service: job service is required")
	}
	return &Service{resumes: resumes, jobs: jobs}, nil
}

// FetchJobs aggregates postings for every keyword in the user's résumés.
// It returns domain.ErrUserIDRequired or domain.ErrNoResumes for bad input.
func (s *Service) FetchJobs(ctx context.Context, userID string) (domain.AggregateResult, error) {
	resumes, err := s.load(ctx, userID)
	if err != nil {
		return domain.AggregateResult{}, err
	}
	return s.jobs.Aggregate(ctx, strings.TrimSpace(userID), resumes)
}

// Keywords returns the keyword set the user's résumés produce
func (s *Service) Keywords(ctx context.Context, userID string) ([]string, error) {
	resumes, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return keyword.Extract(resumes), nil
}

func (s *Service) load(ctx context.Context, userID string) ([]domain.ResumeDocument, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	resumes, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resumes for %s: %w", userID, err)
	}
	if len(resumes) == 0 {
		return nil, domain.ErrNoResumes
	}
	return resumes, nil
}
