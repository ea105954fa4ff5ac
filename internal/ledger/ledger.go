package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates a referenced profile or job does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance occurs when the source profile lacks available
	// balance to cover a requested movement. The check happens against the
	// stored balance at commit time, not against a value read earlier.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAlreadyPaid indicates the job has already transitioned to paid and
	// must not be paid a second time.
	ErrAlreadyPaid = errors.New("job already paid")

	// ErrDepositCapExceeded indicates the deposit amount reaches or exceeds a
	// quarter of the target client's outstanding unpaid job total.
	ErrDepositCapExceeded = errors.New("deposit cap exceeded")

	// ErrInvalidAmount indicates a missing, zero or negative amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrSameProfile indicates source and destination refer to one profile.
	ErrSameProfile = errors.New("source and destination profiles must differ")

	// ErrUnauthorized indicates the requesting profile is not the contract's
	// client and therefore may not pay the job.
	ErrUnauthorized = errors.New("requester is not the contract client")

	// ErrTransient marks a store-level failure (lock wait, serialization,
	// commit) after which no partial state survives. Callers may retry.
	ErrTransient = errors.New("transient store failure")
)

// Profile types recognised by the ledger.
const (
	ProfileTypeClient     = "client"
	ProfileTypeContractor = "contractor"
)

// Contract statuses. Contracts are created and transitioned outside the
// ledger; they are read-only here.
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// TransferResult captures the outcome of a balance movement.
type TransferResult struct {
	FromProfileID uuid.UUID
	ToProfileID   uuid.UUID
	Amount        decimal.Decimal
	FromBalance   decimal.Decimal
	ToBalance     decimal.Decimal
}

// PaymentResult captures the outcome of a job payment.
type PaymentResult struct {
	JobID             uuid.UUID
	ClientID          uuid.UUID
	ContractorID      uuid.UUID
	Price             decimal.Decimal
	PaymentDate       time.Time
	ClientBalance     decimal.Decimal
	ContractorBalance decimal.Decimal
}

// Ledger defines the contract implemented by ledger backends (e.g. Postgres).
// Every mutation executes as one atomic transaction: either all of its
// balance and job writes apply, or none do.
type Ledger interface {
	// Transfer atomically moves amount between two distinct profiles,
	// rejecting with ErrInsufficientBalance when the source balance cannot
	// cover it at commit time.
	Transfer(ctx context.Context, fromProfileID, toProfileID uuid.UUID, amount decimal.Decimal) (TransferResult, error)

	// PayJob moves the job price from the contract's client to its
	// contractor and marks the job paid, at most once per job. The requester
	// must be the contract's client.
	PayJob(ctx context.Context, jobID, requesterID uuid.UUID) (PaymentResult, error)

	// Deposit moves amount from a profile onto a client profile's balance,
	// enforcing the cap: amount must stay strictly below a quarter of the
	// target client's outstanding unpaid job total. The cap is evaluated
	// inside the same transaction that commits the transfer.
	Deposit(ctx context.Context, fromProfileID, targetClientID uuid.UUID, amount decimal.Decimal) (TransferResult, error)

	// OutstandingObligation sums the prices of the client's unpaid jobs
	// across all its contracts, regardless of contract status. Zero when
	// there are none.
	OutstandingObligation(ctx context.Context, clientProfileID uuid.UUID) (decimal.Decimal, error)

	// Balance reads a profile's current balance.
	Balance(ctx context.Context, profileID uuid.UUID) (decimal.Decimal, error)
}

var four = decimal.NewFromInt(4)

// exceedsDepositCap applies the strict cap rule: a deposit is rejected when
// amount >= obligation/4. With no outstanding jobs every deposit is rejected.
func exceedsDepositCap(amount, obligation decimal.Decimal) bool {
	return amount.Cmp(obligation.Div(four)) >= 0
}
