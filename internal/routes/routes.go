package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gigpay/gigpay/internal/billing"
	"github.com/gigpay/gigpay/internal/config"
	"github.com/gigpay/gigpay/internal/contract"
	"github.com/gigpay/gigpay/internal/ledger"
	"github.com/gigpay/gigpay/internal/middleware"
	"github.com/gigpay/gigpay/internal/notification"
	"github.com/gigpay/gigpay/internal/profile"
	"github.com/gigpay/gigpay/internal/reporting"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Backends
	var (
		ledgerBackend ledger.Ledger
		profileRepo   profile.Repository
		contractRepo  contract.Repository
		reportingRepo reporting.Repository
	)
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
		profileRepo = profile.NewPostgresRepository(d.DB)
		contractRepo = contract.NewPostgresRepository(d.DB)
		reportingRepo = reporting.NewPostgresRepository(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
		profileRepo = profile.NewMemoryRepository()
		contractRepo = contract.NewMemoryRepository()
		reportingRepo = reporting.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	billingSvc := billing.NewService(ledgerBackend, notifier)
	billingHandler := billing.NewHandler(billingSvc)
	contractSvc := contract.NewService(contractRepo)
	contractHandler := contract.NewHandler(contractSvc)
	reportingSvc := reporting.NewService(reportingRepo)
	reportingHandler := reporting.NewHandler(reportingSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Profile-authenticated routes
	authed := api.Group("", middleware.ProfileAuth(profileRepo))
	RegisterContractRoutes(authed, contractHandler)
	rateLimiter := middleware.MutationRateLimit(d.Cache, d.Cfg.RatePerMinute)
	RegisterJobRoutes(authed, contractHandler, billingHandler, rateLimiter)
	RegisterBalanceRoutes(authed, billingHandler, rateLimiter)

	// Admin reporting routes
	admin := api.Group("/admin", middleware.AdminAuth(d.Cfg.AdminTokenHash))
	RegisterAdminRoutes(admin, reportingHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
