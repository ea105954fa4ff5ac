package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository builds an in-memory profile store for testing.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[uuid.UUID]Profile)}
}

// MemoryRepository is an in-memory Repository implementation for tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]Profile
}

// Add stores a profile.
func (r *MemoryRepository) Add(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// FindByID fetches a profile by identifier.
func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}
