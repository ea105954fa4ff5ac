package contract

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes contract and job reads scoped to the acting profile.
type Service struct {
	repo Repository
}

// NewService builds a contract service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the contract when the profile is one of its parties.
func (s *Service) Get(ctx context.Context, id, profileID uuid.UUID) (Contract, error) {
	return s.repo.GetOwned(ctx, id, profileID)
}

// ListActive returns the profile's non-terminated contracts.
func (s *Service) ListActive(ctx context.Context, profileID uuid.UUID) ([]Contract, error) {
	return s.repo.ListActive(ctx, profileID)
}

// ListUnpaidJobs returns the profile's unpaid jobs on in-progress contracts.
func (s *Service) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]Job, error) {
	return s.repo.ListUnpaidJobs(ctx, profileID)
}
