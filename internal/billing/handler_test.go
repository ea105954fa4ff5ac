package billing

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gigpay/gigpay/internal/ledger"
)

type fixture struct {
	app        *fiber.App
	led        ledger.Ledger
	client     uuid.UUID
	contractor uuid.UUID
	other      uuid.UUID
	jobID      uuid.UUID
}

// newFixture wires the handler behind a stand-in auth middleware that binds
// the request to the profile named in the profile_id header, mirroring what
// middleware.ProfileAuth does in the full app.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	led := ledger.NewInMemory()
	client, contractor, other := uuid.New(), uuid.New(), uuid.New()
	contractID, jobID := uuid.New(), uuid.New()
	ledger.SeedProfile(led, client, ledger.ProfileTypeClient, dec("1214"))
	ledger.SeedProfile(led, contractor, ledger.ProfileTypeContractor, dec("64"))
	ledger.SeedProfile(led, other, ledger.ProfileTypeClient, dec("5"))
	ledger.SeedContract(led, contractID, client, contractor, ledger.ContractStatusInProgress)
	ledger.SeedJob(led, jobID, contractID, dec("200"))

	handler := NewHandler(NewService(led, nil))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		pid, err := uuid.Parse(c.Get("profile_id"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown profile")
		}
		c.Locals("profile_id", pid)
		return c.Next()
	})
	app.Post("/jobs/:jobId/pay", handler.PayJob)
	app.Post("/balances/deposit/:userId", handler.Deposit)

	return &fixture{app: app, led: led, client: client, contractor: contractor, other: other, jobID: jobID}
}

func (f *fixture) post(t *testing.T, path, asProfile, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("profile_id", asProfile)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestPayJobEndpoint(t *testing.T) {
	f := newFixture(t)

	payPath := "/jobs/" + f.jobID.String() + "/pay"

	// A contractor may not pay the client's job.
	require.Equal(t, fiber.StatusForbidden, f.post(t, payPath, f.contractor.String(), "{}"))

	require.Equal(t, fiber.StatusOK, f.post(t, payPath, f.client.String(), "{}"))

	// Second attempt reads like a missing job.
	require.Equal(t, fiber.StatusNotFound, f.post(t, payPath, f.client.String(), "{}"))

	require.Equal(t, fiber.StatusNotFound, f.post(t, "/jobs/"+uuid.NewString()+"/pay", f.client.String(), "{}"))
	require.Equal(t, fiber.StatusNotFound, f.post(t, "/jobs/not-a-uuid/pay", f.client.String(), "{}"))
}

func TestPayJobEndpointInsufficientBalance(t *testing.T) {
	f := newFixture(t)

	// A fresh job priced beyond the poorer client's means.
	contractID, jobID := uuid.New(), uuid.New()
	ledger.SeedContract(f.led, contractID, f.other, f.contractor, ledger.ContractStatusInProgress)
	ledger.SeedJob(f.led, jobID, contractID, dec("500"))

	status := f.post(t, "/jobs/"+jobID.String()+"/pay", f.other.String(), "{}")
	require.Equal(t, fiber.StatusNotAcceptable, status)
	require.False(t, ledger.JobPaid(f.led, jobID))
}

func TestDepositEndpoint(t *testing.T) {
	f := newFixture(t)

	depositPath := "/balances/deposit/" + f.client.String()

	// The unpaid job gives the target client an obligation of 200; the cap
	// is 50, exclusive.
	require.Equal(t, fiber.StatusOK, f.post(t, depositPath, f.other.String(), `{"amount": "4"}`))
	require.Equal(t, fiber.StatusNotAcceptable, f.post(t, depositPath, f.other.String(), `{"amount": "50"}`))

	// Missing, zero and negative amounts are rejected alike.
	require.Equal(t, fiber.StatusNotAcceptable, f.post(t, depositPath, f.other.String(), `{}`))
	require.Equal(t, fiber.StatusNotAcceptable, f.post(t, depositPath, f.other.String(), `{"amount": "0"}`))
	require.Equal(t, fiber.StatusNotAcceptable, f.post(t, depositPath, f.other.String(), `{"amount": "-3"}`))

	// Contractors are not valid deposit targets.
	status := f.post(t, "/balances/deposit/"+f.contractor.String(), f.other.String(), `{"amount": "1"}`)
	require.Equal(t, fiber.StatusNotFound, status)
}
