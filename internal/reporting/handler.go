package reporting

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler exposes the admin reporting endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a reporting HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type clientSpendResponse struct {
	ID       uuid.UUID       `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

// BestProfession returns the top-earning profession in the range.
func (h *Handler) BestProfession(c *fiber.Ctx) error {
	result, err := h.service.BestProfession(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return translate(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"profession": result.Profession})
}

// BestClients returns the top-paying clients in the range.
func (h *Handler) BestClients(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(http.StatusNotAcceptable, "limit must be a number")
		}
		limit = n
	}

	clients, err := h.service.BestClients(c.UserContext(), c.Query("start"), c.Query("end"), limit)
	if err != nil {
		return translate(err)
	}

	out := make([]clientSpendResponse, 0, len(clients))
	for _, cs := range clients {
		out = append(out, clientSpendResponse{ID: cs.ID, FullName: cs.FullName, Paid: cs.Paid})
	}
	return c.Status(http.StatusOK).JSON(out)
}

func translate(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return fiber.NewError(http.StatusNotAcceptable, "provide valid start & end dates (YYYY-MM-DD) in query")
	case errors.Is(err, ErrNoData):
		return fiber.NewError(http.StatusNotAcceptable, "not enough data")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
