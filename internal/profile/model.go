package profile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile represents a marketplace account holding a monetary balance.
// Balances are only ever mutated through the ledger.
type Profile struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Profession string
	Type       string
	Balance    decimal.Decimal
}

// FullName joins the profile's first and last names.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
