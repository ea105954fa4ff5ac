package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates no profile exists for the given identifier.
var ErrNotFound = errors.New("profile not found")

// Repository resolves profiles for request authentication and reads.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Profile, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed profile repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID fetches a profile by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT id, first_name, last_name, profession, type, balance::text
        FROM profiles WHERE id = $1`, id)
	var (
		p           Profile
		balanceText string
	)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Profession, &p.Type, &balanceText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return Profile{}, fmt.Errorf("parse balance: %w", err)
	}
	p.Balance = balance
	return p, nil
}
