package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigpay/gigpay/internal/billing"
	"github.com/gigpay/gigpay/internal/contract"
)

// RegisterJobRoutes wires job listing and payment endpoints.
func RegisterJobRoutes(r fiber.Router, contracts *contract.Handler, bills *billing.Handler, rateLimiter fiber.Handler) {
	r.Get("/jobs/unpaid", contracts.ListUnpaidJobs)
	r.Post("/jobs/:jobId/pay", rateLimiter, bills.PayJob)
}
