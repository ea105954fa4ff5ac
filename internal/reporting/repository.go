package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNoData indicates no paid jobs fall inside the requested range.
var ErrNoData = errors.New("not enough data")

// ProfessionEarnings aggregates paid job totals for one profession.
type ProfessionEarnings struct {
	Profession string
	Total      decimal.Decimal
}

// ClientSpend aggregates what one client paid for jobs.
type ClientSpend struct {
	ID       uuid.UUID
	FullName string
	Paid     decimal.Decimal
}

// Repository runs read-only aggregations over paid jobs. The range is
// half-open: start inclusive, end exclusive.
type Repository interface {
	BestProfession(ctx context.Context, start, end time.Time) (ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]ClientSpend, error)
}

// PostgresRepository aggregates reporting data from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a reporting repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// BestProfession returns the profession with the highest paid-job total in
// the range.
func (r *PostgresRepository) BestProfession(ctx context.Context, start, end time.Time) (ProfessionEarnings, error) {
	const query = `
        SELECT p.profession, SUM(j.price)::text
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        INNER JOIN profiles p ON p.id = c.contractor_id
        WHERE j.paid = TRUE AND j.payment_date >= $1 AND j.payment_date < $2
        GROUP BY p.profession
        ORDER BY SUM(j.price) DESC
        LIMIT 1`

	var (
		result    ProfessionEarnings
		totalText string
	)
	if err := r.db.QueryRow(ctx, query, start, end).Scan(&result.Profession, &totalText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfessionEarnings{}, ErrNoData
		}
		return ProfessionEarnings{}, err
	}
	total, err := decimal.NewFromString(totalText)
	if err != nil {
		return ProfessionEarnings{}, fmt.Errorf("parse earnings total: %w", err)
	}
	result.Total = total
	return result, nil
}

// BestClients returns the top-paying clients in the range, highest first.
func (r *PostgresRepository) BestClients(ctx context.Context, start, end time.Time, limit int) ([]ClientSpend, error) {
	const query = `
        SELECT p.id, p.first_name || ' ' || p.last_name, SUM(j.price)::text
        FROM jobs j
        INNER JOIN contracts c ON c.id = j.contract_id
        INNER JOIN profiles p ON p.id = c.client_id
        WHERE j.paid = TRUE AND j.payment_date >= $1 AND j.payment_date < $2
        GROUP BY p.id, p.first_name, p.last_name
        ORDER BY SUM(j.price) DESC
        LIMIT $3`

	rows, err := r.db.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]ClientSpend, 0, limit)
	for rows.Next() {
		var (
			cs       ClientSpend
			paidText string
		)
		if err := rows.Scan(&cs.ID, &cs.FullName, &paidText); err != nil {
			return nil, err
		}
		paid, err := decimal.NewFromString(paidText)
		if err != nil {
			return nil, fmt.Errorf("parse paid total: %w", err)
		}
		cs.Paid = paid
		clients = append(clients, cs)
	}
	return clients, rows.Err()
}
