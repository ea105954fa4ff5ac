package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigpay/gigpay/internal/contract"
)

// RegisterContractRoutes wires contract read endpoints.
func RegisterContractRoutes(r fiber.Router, h *contract.Handler) {
	r.Get("/contracts", h.List)
	r.Get("/contracts/:id", h.Get)
}
