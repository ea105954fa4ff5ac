package billing

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigpay/gigpay/internal/ledger"
)

// Handler exposes payment and deposit endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a billing handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// PayJob processes a job payment by the authenticated client.
func (h *Handler) PayJob(c *fiber.Ctx) error {
	profileID, _ := c.Locals("profile_id").(uuid.UUID)
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "job not found")
	}

	res, err := h.service.PayJob(c.UserContext(), jobID, profileID)
	if err != nil {
		return translate(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":            "Payment successful",
		"job_id":             res.JobID,
		"price":              res.Price,
		"payment_date":       res.PaymentDate,
		"client_balance":     res.ClientBalance,
		"contractor_balance": res.ContractorBalance,
	})
}

// Deposit processes a deposit onto a client profile's balance.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	profileID, _ := c.Locals("profile_id").(uuid.UUID)
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "profile not found")
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusNotAcceptable, "provide amount to be deposited")
	}

	res, err := h.service.Deposit(c.UserContext(), profileID, targetID, req.Amount)
	if err != nil {
		return translate(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":        "Deposit successful",
		"from_balance":   res.FromBalance,
		"target_balance": res.ToBalance,
	})
}

// translate maps ledger sentinel errors onto HTTP statuses. An already-paid
// job reads like an absent one to the caller.
func translate(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "not found")
	case errors.Is(err, ledger.ErrAlreadyPaid):
		return fiber.NewError(http.StatusNotFound, "job already paid")
	case errors.Is(err, ledger.ErrUnauthorized):
		return fiber.NewError(http.StatusForbidden, "only the contract client may pay this job")
	case errors.Is(err, ledger.ErrInvalidAmount):
		return fiber.NewError(http.StatusNotAcceptable, "provide a positive amount")
	case errors.Is(err, ledger.ErrSameProfile):
		return fiber.NewError(http.StatusNotAcceptable, "source and destination profiles must differ")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return fiber.NewError(http.StatusNotAcceptable, "insufficient balance")
	case errors.Is(err, ledger.ErrDepositCapExceeded):
		return fiber.NewError(http.StatusNotAcceptable, "you can't deposit more than 25% of your total of jobs to pay")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
