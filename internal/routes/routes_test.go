package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/gigpay/gigpay/internal/config"
	"github.com/gigpay/gigpay/internal/logging"
)

func devApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{AppName: "GigPay", AppEnv: "development", AdminTokenHash: "$2a$10$fakefakefakefakefakefake"}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

func TestSetupRequiresBackendsOutsideDev(t *testing.T) {
	app := fiber.New()
	cfg := config.Config{AppEnv: "production"}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err == nil {
		t.Fatal("expected setup to fail without database in production")
	}
}

func TestPingAndHealth(t *testing.T) {
	app := devApp(t)

	for _, path := range []string{"/healthz", "/api/v1/ping"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("app.Test %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 from %s, got %d", path, resp.StatusCode)
		}
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := devApp(t)

	paths := []string{"/api/v1/contracts", "/api/v1/jobs/unpaid"}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("app.Test %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("expected 401 from %s, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminRoutesRejectBadToken(t *testing.T) {
	app := devApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/best-profession?start=2020-01-01&end=2020-12-31", nil)
	req.Header.Set("admin_token", "wrong")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
