package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigpay/gigpay/internal/reporting"
)

// RegisterAdminRoutes wires the reporting endpoints.
func RegisterAdminRoutes(r fiber.Router, h *reporting.Handler) {
	r.Get("/best-profession", h.BestProfession)
	r.Get("/best-clients", h.BestClients)
}
