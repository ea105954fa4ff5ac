package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenHeader = "admin_token"

// AdminAuth guards the reporting endpoints. The expected token is injected
// at startup as a bcrypt hash, so the secret itself never lives in the
// binary or the environment.
func AdminAuth(tokenHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(adminTokenHeader)
		if token == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing admin_token header")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid admin token")
		}
		return c.Next()
	}
}
