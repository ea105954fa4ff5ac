package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func seedReports(t *testing.T) (*Service, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := NewMemoryRepository()

	alice, bob := uuid.New(), uuid.New()
	repo.AddPaidJob(PaidJob{ClientID: alice, ClientName: "Alice Moyo", Profession: "Programmer", Price: decimal.NewFromInt(2020), PaymentDate: day("2020-08-15")})
	repo.AddPaidJob(PaidJob{ClientID: alice, ClientName: "Alice Moyo", Profession: "Programmer", Price: decimal.NewFromInt(200), PaymentDate: day("2020-08-16")})
	repo.AddPaidJob(PaidJob{ClientID: bob, ClientName: "Bob Okoro", Profession: "Musician", Price: decimal.NewFromInt(21), PaymentDate: day("2020-08-10")})
	repo.AddPaidJob(PaidJob{ClientID: bob, ClientName: "Bob Okoro", Profession: "Musician", Price: decimal.NewFromInt(5000), PaymentDate: day("2021-01-05")})

	return NewService(repo), alice, bob
}

func TestBestProfessionRange(t *testing.T) {
	svc, _, _ := seedReports(t)
	ctx := context.Background()

	result, err := svc.BestProfession(ctx, "2020-08-01", "2020-08-31")
	require.NoError(t, err)
	assert.Equal(t, "Programmer", result.Profession)

	// The paid sum outside August flips the winner.
	result, err = svc.BestProfession(ctx, "2020-01-01", "2021-12-31")
	require.NoError(t, err)
	assert.Equal(t, "Musician", result.Profession)
}

func TestBestProfessionEndDateInclusive(t *testing.T) {
	svc, _, _ := seedReports(t)

	result, err := svc.BestProfession(context.Background(), "2020-08-16", "2020-08-16")
	require.NoError(t, err)
	assert.Equal(t, "Programmer", result.Profession)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(200)))
}

func TestBestProfessionValidation(t *testing.T) {
	svc, _, _ := seedReports(t)
	ctx := context.Background()

	_, err := svc.BestProfession(ctx, "", "2020-08-31")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.BestProfession(ctx, "15-08-2020", "2020-08-31")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.BestProfession(ctx, "1999-01-01", "1999-12-31")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBestClientsOrderingAndLimit(t *testing.T) {
	svc, alice, bob := seedReports(t)
	ctx := context.Background()

	clients, err := svc.BestClients(ctx, "2020-01-01", "2021-12-31", 0)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, bob, clients[0].ID)
	assert.True(t, clients[0].Paid.Equal(decimal.NewFromInt(5021)))
	assert.Equal(t, alice, clients[1].ID)

	clients, err = svc.BestClients(ctx, "2020-01-01", "2021-12-31", 1)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Bob Okoro", clients[0].FullName)

	_, err = svc.BestClients(ctx, "1999-01-01", "1999-12-31", 2)
	assert.ErrorIs(t, err, ErrNoData)
}
