package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigpay/gigpay/internal/ledger"
	"github.com/gigpay/gigpay/internal/notification"
)

// Service wires job payments and client deposits onto the ledger.
type Service struct {
	ledger   ledger.Ledger
	notifier notification.Notifier
}

// NewService constructs a billing service.
func NewService(ledgerBackend ledger.Ledger, notifier notification.Notifier) *Service {
	return &Service{ledger: ledgerBackend, notifier: notifier}
}

// PayJob pays a job on behalf of the requesting profile. Authorization,
// the double-payment guard and the balance movement all happen inside the
// ledger's transaction; this layer only adds the notification side effect.
func (s *Service) PayJob(ctx context.Context, jobID, requesterID uuid.UUID) (ledger.PaymentResult, error) {
	res, err := s.ledger.PayJob(ctx, jobID, requesterID)
	if err != nil {
		return ledger.PaymentResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindJobPaid,
			Destination: res.ContractorID.String(),
			Body:        fmt.Sprintf("Job %s paid: %s received", res.JobID, res.Price),
		})
	}

	return res, nil
}

// Deposit moves amount from the acting profile onto the target client's
// balance, subject to the deposit cap. A nil amount is rejected the same
// way as a non-positive one.
func (s *Service) Deposit(ctx context.Context, fromProfileID, targetClientID uuid.UUID, amount *decimal.Decimal) (ledger.TransferResult, error) {
	if amount == nil {
		return ledger.TransferResult{}, ledger.ErrInvalidAmount
	}

	res, err := s.ledger.Deposit(ctx, fromProfileID, targetClientID, *amount)
	if err != nil {
		return ledger.TransferResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDeposit,
			Destination: targetClientID.String(),
			Body:        fmt.Sprintf("Deposit of %s received from %s", amount, fromProfileID),
		})
	}

	return res, nil
}
