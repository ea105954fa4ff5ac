package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memProfile struct {
	Type    string
	Balance decimal.Decimal
}

type memContract struct {
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Status       string
}

type memJob struct {
	ContractID  uuid.UUID
	Price       decimal.Decimal
	Paid        bool
	PaymentDate time.Time
}

type inMemoryLedger struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]*memProfile
	contracts map[uuid.UUID]*memContract
	jobs      map[uuid.UUID]*memJob
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit
// tests. All operations run under one mutex, which stands in for the
// serializable transaction the Postgres backend provides.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		profiles:  make(map[uuid.UUID]*memProfile),
		contracts: make(map[uuid.UUID]*memContract),
		jobs:      make(map[uuid.UUID]*memJob),
	}
}

func (l *inMemoryLedger) Transfer(_ context.Context, fromProfileID, toProfileID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	if amount.Sign() <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromProfileID == toProfileID {
		return TransferResult{}, ErrSameProfile
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.moveLocked(fromProfileID, toProfileID, amount)
}

func (l *inMemoryLedger) PayJob(_ context.Context, jobID, requesterID uuid.UUID) (PaymentResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs[jobID]
	if !ok {
		return PaymentResult{}, ErrNotFound
	}
	contract, ok := l.contracts[job.ContractID]
	if !ok {
		return PaymentResult{}, ErrNotFound
	}
	if job.Paid {
		return PaymentResult{}, ErrAlreadyPaid
	}
	if requesterID != contract.ClientID {
		return PaymentResult{}, ErrUnauthorized
	}

	movement, err := l.moveLocked(contract.ClientID, contract.ContractorID, job.Price)
	if err != nil {
		return PaymentResult{}, err
	}

	job.Paid = true
	job.PaymentDate = time.Now().UTC()

	return PaymentResult{
		JobID:             jobID,
		ClientID:          contract.ClientID,
		ContractorID:      contract.ContractorID,
		Price:             job.Price,
		PaymentDate:       job.PaymentDate,
		ClientBalance:     movement.FromBalance,
		ContractorBalance: movement.ToBalance,
	}, nil
}

func (l *inMemoryLedger) Deposit(_ context.Context, fromProfileID, targetClientID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	if amount.Sign() <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromProfileID == targetClientID {
		return TransferResult{}, ErrSameProfile
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	from, ok := l.profiles[fromProfileID]
	if !ok {
		return TransferResult{}, ErrNotFound
	}
	target, ok := l.profiles[targetClientID]
	if !ok || target.Type != ProfileTypeClient {
		return TransferResult{}, ErrNotFound
	}
	if from.Balance.Cmp(amount) < 0 {
		return TransferResult{}, ErrInsufficientBalance
	}
	if exceedsDepositCap(amount, l.obligationLocked(targetClientID)) {
		return TransferResult{}, ErrDepositCapExceeded
	}

	return l.moveLocked(fromProfileID, targetClientID, amount)
}

func (l *inMemoryLedger) OutstandingObligation(_ context.Context, clientProfileID uuid.UUID) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.obligationLocked(clientProfileID), nil
}

func (l *inMemoryLedger) Balance(_ context.Context, profileID uuid.UUID) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	profile, ok := l.profiles[profileID]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return profile.Balance, nil
}

// moveLocked applies the debit and credit together. Callers hold the mutex.
func (l *inMemoryLedger) moveLocked(fromID, toID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	from, ok := l.profiles[fromID]
	if !ok {
		return TransferResult{}, ErrNotFound
	}
	to, ok := l.profiles[toID]
	if !ok {
		return TransferResult{}, ErrNotFound
	}
	if from.Balance.Cmp(amount) < 0 {
		return TransferResult{}, ErrInsufficientBalance
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	return TransferResult{
		FromProfileID: fromID,
		ToProfileID:   toID,
		Amount:        amount,
		FromBalance:   from.Balance,
		ToBalance:     to.Balance,
	}, nil
}

func (l *inMemoryLedger) obligationLocked(clientID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, job := range l.jobs {
		if job.Paid {
			continue
		}
		contract, ok := l.contracts[job.ContractID]
		if !ok || contract.ClientID != clientID {
			continue
		}
		sum = sum.Add(job.Price)
	}
	return sum
}
