package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigpay/gigpay/internal/billing"
)

// RegisterBalanceRoutes wires the deposit endpoint.
func RegisterBalanceRoutes(r fiber.Router, h *billing.Handler, rateLimiter fiber.Handler) {
	r.Post("/balances/deposit/:userId", rateLimiter, h.Deposit)
}
