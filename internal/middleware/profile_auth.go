package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gigpay/gigpay/internal/profile"
)

const profileIDHeader = "profile_id"

// ProfileAuth resolves the acting profile from the profile_id header and
// stores its identifier and type in the request locals. Requests without a
// resolvable profile are rejected before any handler runs.
func ProfileAuth(repo profile.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(profileIDHeader)
		if raw == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing profile_id header")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid profile_id header")
		}

		p, err := repo.FindByID(c.UserContext(), id)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "unknown profile")
		}

		c.Locals("profile_id", p.ID)
		c.Locals("profile_type", p.Type)
		return c.Next()
	}
}
