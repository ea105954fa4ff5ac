package contract

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) (*MemoryRepository, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := NewMemoryRepository()
	client, contractor := uuid.New(), uuid.New()

	active := Contract{ID: uuid.New(), ClientID: client, ContractorID: contractor, Status: "in_progress", Terms: "hourly"}
	pending := Contract{ID: uuid.New(), ClientID: client, ContractorID: contractor, Status: "new", Terms: "fixed"}
	dead := Contract{ID: uuid.New(), ClientID: client, ContractorID: contractor, Status: "terminated", Terms: "old"}
	repo.AddContract(active)
	repo.AddContract(pending)
	repo.AddContract(dead)

	repo.AddJob(Job{ID: uuid.New(), ContractID: active.ID, Description: "wire the shed", Price: decimal.NewFromInt(120)})
	repo.AddJob(Job{ID: uuid.New(), ContractID: active.ID, Description: "paint the shed", Price: decimal.NewFromInt(80), Paid: true})
	repo.AddJob(Job{ID: uuid.New(), ContractID: pending.ID, Description: "plan the shed", Price: decimal.NewFromInt(40)})
	repo.AddJob(Job{ID: uuid.New(), ContractID: dead.ID, Description: "demolish the shed", Price: decimal.NewFromInt(500)})

	return repo, client, contractor
}

func TestGetContractVisibility(t *testing.T) {
	repo, client, contractor := seedRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	contracts, err := repo.ListActive(ctx, client)
	require.NoError(t, err)
	require.NotEmpty(t, contracts)
	id := contracts[0].ID

	got, err := svc.Get(ctx, id, client)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	got, err = svc.Get(ctx, id, contractor)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.Get(ctx, id, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, uuid.New(), client)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveExcludesTerminated(t *testing.T) {
	repo, client, contractor := seedRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	for _, pid := range []uuid.UUID{client, contractor} {
		contracts, err := svc.ListActive(ctx, pid)
		require.NoError(t, err)
		assert.Len(t, contracts, 2)
		for _, c := range contracts {
			assert.NotEqual(t, "terminated", c.Status)
		}
	}

	contracts, err := svc.ListActive(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, contracts)
}

func TestListUnpaidJobsFilters(t *testing.T) {
	repo, client, _ := seedRepo(t)
	svc := NewService(repo)

	jobs, err := svc.ListUnpaidJobs(context.Background(), client)
	require.NoError(t, err)

	// Only the unpaid job on the in-progress contract qualifies: the paid
	// one, the job on the new contract and the terminated contract's job
	// are all excluded.
	require.Len(t, jobs, 1)
	assert.Equal(t, "wire the shed", jobs[0].Description)
	assert.False(t, jobs[0].Paid)
}
