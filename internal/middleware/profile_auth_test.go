package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigpay/gigpay/internal/profile"
)

func TestProfileAuth(t *testing.T) {
	repo := profile.NewMemoryRepository()
	known := profile.Profile{ID: uuid.New(), FirstName: "Ada", LastName: "Eze", Profession: "Programmer", Type: "client", Balance: decimal.NewFromInt(100)}
	repo.Add(known)

	app := fiber.New()
	app.Use(ProfileAuth(repo))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, _ := c.Locals("profile_id").(uuid.UUID)
		return c.JSON(fiber.Map{"id": id.String()})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: fiber.StatusUnauthorized},
		{name: "malformed id", header: "not-a-uuid", want: fiber.StatusUnauthorized},
		{name: "unknown profile", header: uuid.NewString(), want: fiber.StatusUnauthorized},
		{name: "known profile", header: known.ID.String(), want: fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("profile_id", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.StatusCode)
			}
		})
	}
}
