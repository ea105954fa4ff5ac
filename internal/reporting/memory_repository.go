package reporting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaidJob is one settled job used to seed the in-memory reporting store.
type PaidJob struct {
	ClientID    uuid.UUID
	ClientName  string
	Profession  string
	Price       decimal.Decimal
	PaymentDate time.Time
}

// MemoryRepository is an in-memory Repository implementation for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	jobs []PaidJob
}

// NewMemoryRepository builds an in-memory reporting store for testing.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// AddPaidJob records a settled job.
func (r *MemoryRepository) AddPaidJob(job PaidJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
}

// BestProfession returns the profession with the highest paid-job total in
// the range.
func (r *MemoryRepository) BestProfession(_ context.Context, start, end time.Time) (ProfessionEarnings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[string]decimal.Decimal)
	for _, job := range r.jobs {
		if !inRange(job.PaymentDate, start, end) {
			continue
		}
		totals[job.Profession] = totals[job.Profession].Add(job.Price)
	}
	if len(totals) == 0 {
		return ProfessionEarnings{}, ErrNoData
	}

	var best ProfessionEarnings
	for profession, total := range totals {
		if best.Profession == "" || total.Cmp(best.Total) > 0 {
			best = ProfessionEarnings{Profession: profession, Total: total}
		}
	}
	return best, nil
}

// BestClients returns the top-paying clients in the range, highest first.
func (r *MemoryRepository) BestClients(_ context.Context, start, end time.Time, limit int) ([]ClientSpend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[uuid.UUID]*ClientSpend)
	for _, job := range r.jobs {
		if !inRange(job.PaymentDate, start, end) {
			continue
		}
		if cs, ok := totals[job.ClientID]; ok {
			cs.Paid = cs.Paid.Add(job.Price)
		} else {
			totals[job.ClientID] = &ClientSpend{ID: job.ClientID, FullName: job.ClientName, Paid: job.Price}
		}
	}

	clients := make([]ClientSpend, 0, len(totals))
	for _, cs := range totals {
		clients = append(clients, *cs)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Paid.Cmp(clients[j].Paid) > 0 })
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return clients, nil
}

func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}
