package contract

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository implementation for tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	contracts map[uuid.UUID]Contract
	jobs      map[uuid.UUID]Job
}

// NewMemoryRepository builds an in-memory contract store for testing.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		contracts: make(map[uuid.UUID]Contract),
		jobs:      make(map[uuid.UUID]Job),
	}
}

// AddContract stores a contract.
func (r *MemoryRepository) AddContract(c Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[c.ID] = c
}

// AddJob stores a job.
func (r *MemoryRepository) AddJob(j Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = j
}

// GetOwned fetches a contract visible to the profile as client or contractor.
func (r *MemoryRepository) GetOwned(_ context.Context, id, profileID uuid.UUID) (Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[id]
	if !ok || (c.ClientID != profileID && c.ContractorID != profileID) {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

// ListActive fetches the profile's non-terminated contracts.
func (r *MemoryRepository) ListActive(_ context.Context, profileID uuid.UUID) ([]Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contracts := make([]Contract, 0)
	for _, c := range r.contracts {
		if c.Status == "terminated" {
			continue
		}
		if c.ClientID != profileID && c.ContractorID != profileID {
			continue
		}
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].ID.String() < contracts[j].ID.String() })
	return contracts, nil
}

// ListUnpaidJobs fetches unpaid jobs on in-progress contracts where the
// profile is a party.
func (r *MemoryRepository) ListUnpaidJobs(_ context.Context, profileID uuid.UUID) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jobs := make([]Job, 0)
	for _, j := range r.jobs {
		if j.Paid {
			continue
		}
		c, ok := r.contracts[j.ContractID]
		if !ok || c.Status != "in_progress" {
			continue
		}
		if c.ClientID != profileID && c.ContractorID != profileID {
			continue
		}
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID.String() < jobs[j].ID.String() })
	return jobs, nil
}
