package contract

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler exposes contract and job read endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a contract HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type contractResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	ContractorID uuid.UUID `json:"contractor_id"`
	Status       string    `json:"status"`
	Terms        string    `json:"terms"`
}

type jobResponse struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contract_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// Get returns a single contract when the caller is a party to it.
func (h *Handler) Get(c *fiber.Ctx) error {
	profileID, _ := c.Locals("profile_id").(uuid.UUID)
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "contract not found")
	}

	contract, err := h.service.Get(c.UserContext(), contractID, profileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "contract not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toContractResponse(contract))
}

// List returns the caller's non-terminated contracts.
func (h *Handler) List(c *fiber.Ctx) error {
	profileID, _ := c.Locals("profile_id").(uuid.UUID)

	contracts, err := h.service.ListActive(c.UserContext(), profileID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		out = append(out, toContractResponse(contract))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// ListUnpaidJobs returns the caller's unpaid jobs on active contracts.
func (h *Handler) ListUnpaidJobs(c *fiber.Ctx) error {
	profileID, _ := c.Locals("profile_id").(uuid.UUID)

	jobs, err := h.service.ListUnpaidJobs(c.UserContext(), profileID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobResponse{
			ID:          job.ID,
			ContractID:  job.ContractID,
			Description: job.Description,
			Price:       job.Price,
			Paid:        job.Paid,
			PaymentDate: job.PaymentDate,
		})
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toContractResponse(c Contract) contractResponse {
	return contractResponse{
		ID:           c.ID,
		ClientID:     c.ClientID,
		ContractorID: c.ContractorID,
		Status:       c.Status,
		Terms:        c.Terms,
	}
}
