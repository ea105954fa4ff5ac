package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresLedger persists profile balances and job payment state in
// PostgreSQL. Mutations run inside a single transaction with the affected
// rows locked, so concurrent payments and deposits serialize per row.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

type lockedProfile struct {
	ID      uuid.UUID
	Type    string
	Balance decimal.Decimal
}

// Transfer moves amount between two profile balances atomically.
func (l *PostgresLedger) Transfer(ctx context.Context, fromProfileID, toProfileID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	if amount.Sign() <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromProfileID == toProfileID {
		return TransferResult{}, ErrSameProfile
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransferResult{}, classify(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := lockProfiles(ctx, tx, fromProfileID, toProfileID); err != nil {
		return TransferResult{}, err
	}

	res, err := moveBalance(ctx, tx, fromProfileID, toProfileID, amount)
	if err != nil {
		return TransferResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return TransferResult{}, classify(err)
	}
	return res, nil
}

// PayJob locks the job row, verifies it is unpaid and requested by the
// contract's client, then moves the price and flips the paid flag. The
// check and the writes share one transaction, so two concurrent payments of
// the same job yield exactly one success and one ErrAlreadyPaid.
func (l *PostgresLedger) PayJob(ctx context.Context, jobID, requesterID uuid.UUID) (PaymentResult, error) {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PaymentResult{}, classify(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	const jobQuery = `
        SELECT j.price::text, j.paid, c.client_id, c.contractor_id
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        WHERE j.id = $1
        FOR UPDATE OF j`

	var (
		priceText    string
		paid         *bool
		clientID     uuid.UUID
		contractorID uuid.UUID
	)
	if err := tx.QueryRow(ctx, jobQuery, jobID).Scan(&priceText, &paid, &clientID, &contractorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PaymentResult{}, ErrNotFound
		}
		return PaymentResult{}, classify(err)
	}
	if paid != nil && *paid {
		return PaymentResult{}, ErrAlreadyPaid
	}
	if requesterID != clientID {
		return PaymentResult{}, ErrUnauthorized
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("parse job price: %w", err)
	}

	if _, err := lockProfiles(ctx, tx, clientID, contractorID); err != nil {
		return PaymentResult{}, err
	}

	movement, err := moveBalance(ctx, tx, clientID, contractorID, price)
	if err != nil {
		return PaymentResult{}, err
	}

	paymentDate := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE jobs SET paid = TRUE, payment_date = $2 WHERE id = $1`, jobID, paymentDate); err != nil {
		return PaymentResult{}, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PaymentResult{}, classify(err)
	}

	return PaymentResult{
		JobID:             jobID,
		ClientID:          clientID,
		ContractorID:      contractorID,
		Price:             price,
		PaymentDate:       paymentDate,
		ClientBalance:     movement.FromBalance,
		ContractorBalance: movement.ToBalance,
	}, nil
}

// Deposit moves amount onto a client profile's balance under the 25% cap.
// The outstanding obligation is recomputed after both profile rows are
// locked, so a concurrent job payment cannot invalidate the cap decision
// between the read and the commit.
func (l *PostgresLedger) Deposit(ctx context.Context, fromProfileID, targetClientID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	if amount.Sign() <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromProfileID == targetClientID {
		return TransferResult{}, ErrSameProfile
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransferResult{}, classify(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	locked, err := lockProfiles(ctx, tx, fromProfileID, targetClientID)
	if err != nil {
		return TransferResult{}, err
	}
	if locked[targetClientID].Type != ProfileTypeClient {
		return TransferResult{}, ErrNotFound
	}
	if locked[fromProfileID].Balance.Cmp(amount) < 0 {
		return TransferResult{}, ErrInsufficientBalance
	}

	obligation, err := outstandingObligationTx(ctx, tx, targetClientID)
	if err != nil {
		return TransferResult{}, err
	}
	if exceedsDepositCap(amount, obligation) {
		return TransferResult{}, ErrDepositCapExceeded
	}

	res, err := moveBalance(ctx, tx, fromProfileID, targetClientID, amount)
	if err != nil {
		return TransferResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return TransferResult{}, classify(err)
	}
	return res, nil
}

// OutstandingObligation sums unpaid job prices for the client's contracts.
func (l *PostgresLedger) OutstandingObligation(ctx context.Context, clientProfileID uuid.UUID) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(j.price), 0)::text
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        WHERE j.paid IS NULL AND c.client_id = $1`
	var sumText string
	if err := l.db.QueryRow(ctx, query, clientProfileID).Scan(&sumText); err != nil {
		return decimal.Zero, classify(err)
	}
	sum, err := decimal.NewFromString(sumText)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse obligation sum: %w", err)
	}
	return sum, nil
}

// Balance returns the stored balance for the profile.
func (l *PostgresLedger) Balance(ctx context.Context, profileID uuid.UUID) (decimal.Decimal, error) {
	var balanceText string
	err := l.db.QueryRow(ctx, `SELECT balance::text FROM profiles WHERE id = $1`, profileID).Scan(&balanceText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, classify(err)
	}
	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance: %w", err)
	}
	return balance, nil
}

// lockProfiles acquires row locks on the given profiles in ascending id
// order, so two transactions touching the same pair cannot deadlock.
func lockProfiles(ctx context.Context, tx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]lockedProfile, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	const query = `SELECT id, type, balance::text FROM profiles WHERE id = $1 FOR UPDATE`
	locked := make(map[uuid.UUID]lockedProfile, len(ordered))
	for _, id := range ordered {
		var (
			p           lockedProfile
			balanceText string
		)
		if err := tx.QueryRow(ctx, query, id).Scan(&p.ID, &p.Type, &balanceText); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, classify(err)
		}
		balance, err := decimal.NewFromString(balanceText)
		if err != nil {
			return nil, fmt.Errorf("parse balance: %w", err)
		}
		p.Balance = balance
		locked[id] = p
	}
	return locked, nil
}

// moveBalance debits the source and credits the destination as relative
// updates against the stored values. The debit is conditional on sufficient
// balance so the non-negativity invariant holds at commit time even if the
// balance changed after validation.
func moveBalance(ctx context.Context, tx pgx.Tx, fromID, toID uuid.UUID, amount decimal.Decimal) (TransferResult, error) {
	const debit = `
        UPDATE profiles SET balance = balance - $1::numeric
        WHERE id = $2 AND balance >= $1::numeric
        RETURNING balance::text`
	var fromText string
	if err := tx.QueryRow(ctx, debit, amount.String(), fromID).Scan(&fromText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row exists (locked above); the guard failed on balance.
			return TransferResult{}, ErrInsufficientBalance
		}
		return TransferResult{}, classify(err)
	}

	const credit = `
        UPDATE profiles SET balance = balance + $1::numeric
        WHERE id = $2
        RETURNING balance::text`
	var toText string
	if err := tx.QueryRow(ctx, credit, amount.String(), toID).Scan(&toText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TransferResult{}, ErrNotFound
		}
		return TransferResult{}, classify(err)
	}

	fromBalance, err := decimal.NewFromString(fromText)
	if err != nil {
		return TransferResult{}, fmt.Errorf("parse balance: %w", err)
	}
	toBalance, err := decimal.NewFromString(toText)
	if err != nil {
		return TransferResult{}, fmt.Errorf("parse balance: %w", err)
	}

	return TransferResult{
		FromProfileID: fromID,
		ToProfileID:   toID,
		Amount:        amount,
		FromBalance:   fromBalance,
		ToBalance:     toBalance,
	}, nil
}

func outstandingObligationTx(ctx context.Context, tx pgx.Tx, clientID uuid.UUID) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(j.price), 0)::text
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        WHERE j.paid IS NULL AND c.client_id = $1`
	var sumText string
	if err := tx.QueryRow(ctx, query, clientID).Scan(&sumText); err != nil {
		return decimal.Zero, classify(err)
	}
	sum, err := decimal.NewFromString(sumText)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse obligation sum: %w", err)
	}
	return sum, nil
}

// classify maps lock-wait, deadlock and serialization failures to
// ErrTransient so callers can distinguish retryable outcomes from
// permanent rejections.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}
	return err
}
