package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the contract does not exist or is not visible to
// the requesting profile.
var ErrNotFound = errors.New("contract not found")

// Repository reads contracts and their jobs on behalf of a profile.
type Repository interface {
	// GetOwned returns the contract only when the profile is a party to it.
	GetOwned(ctx context.Context, id, profileID uuid.UUID) (Contract, error)
	// ListActive returns the profile's non-terminated contracts.
	ListActive(ctx context.Context, profileID uuid.UUID) ([]Contract, error)
	// ListUnpaidJobs returns unpaid jobs on the profile's in-progress contracts.
	ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]Job, error)
}

// PostgresRepository reads contracts from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetOwned fetches a contract visible to the profile as client or contractor.
func (r *PostgresRepository) GetOwned(ctx context.Context, id, profileID uuid.UUID) (Contract, error) {
	row := r.db.QueryRow(ctx, `SELECT id, client_id, contractor_id, status, terms
        FROM contracts
        WHERE id = $1 AND (client_id = $2 OR contractor_id = $2)`, id, profileID)
	var c Contract
	if err := row.Scan(&c.ID, &c.ClientID, &c.ContractorID, &c.Status, &c.Terms); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contract{}, ErrNotFound
		}
		return Contract{}, err
	}
	return c, nil
}

// ListActive fetches the profile's non-terminated contracts.
func (r *PostgresRepository) ListActive(ctx context.Context, profileID uuid.UUID) ([]Contract, error) {
	rows, err := r.db.Query(ctx, `SELECT id, client_id, contractor_id, status, terms
        FROM contracts
        WHERE status <> 'terminated' AND (client_id = $1 OR contractor_id = $1)
        ORDER BY id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]Contract, 0)
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.ClientID, &c.ContractorID, &c.Status, &c.Terms); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// ListUnpaidJobs fetches unpaid jobs on in-progress contracts where the
// profile is a party.
func (r *PostgresRepository) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]Job, error) {
	rows, err := r.db.Query(ctx, `SELECT j.id, j.contract_id, j.description, j.price::text
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        WHERE j.paid IS NULL
          AND c.status = 'in_progress'
          AND (c.client_id = $1 OR c.contractor_id = $1)
        ORDER BY j.id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var (
			j         Job
			priceText string
		)
		if err := rows.Scan(&j.ID, &j.ContractID, &j.Description, &priceText); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("parse job price: %w", err)
		}
		j.Price = price
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
