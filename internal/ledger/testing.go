package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedProfile is a test helper that registers a profile with a starting
// balance when using the in-memory ledger.
func SeedProfile(l Ledger, id uuid.UUID, profileType string, balance decimal.Decimal) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.profiles[id] = &memProfile{Type: profileType, Balance: balance}
	}
}

// SeedContract is a test helper that registers a contract between two
// profiles when using the in-memory ledger.
func SeedContract(l Ledger, id, clientID, contractorID uuid.UUID, status string) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.contracts[id] = &memContract{ClientID: clientID, ContractorID: contractorID, Status: status}
	}
}

// SeedJob is a test helper that registers an unpaid job under a contract
// when using the in-memory ledger.
func SeedJob(l Ledger, id, contractID uuid.UUID, price decimal.Decimal) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.jobs[id] = &memJob{ContractID: contractID, Price: price}
	}
}

// JobPaid reports whether the in-memory ledger recorded the job as paid.
func JobPaid(l Ledger, id uuid.UUID) bool {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		if job, exists := mem.jobs[id]; exists {
			return job.Paid
		}
	}
	return false
}
