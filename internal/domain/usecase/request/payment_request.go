package request

import (
	"context"
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/google/uuid"
)

// UseCase handles payment requests. Accepting one delegates to the Transfer
// Processor, so all ledger invariants are enforced in exactly one place.
type UseCase struct {
	requestRepo  persistence.PaymentRequestRepository
	accountRepo  persistence.AccountRepository
	transfers    portuse.TransferUseCase
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new payment request UseCase
func NewUseCase(
	requestRepo persistence.PaymentRequestRepository,
	accountRepo persistence.AccountRepository,
	transfers portuse.TransferUseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		accountRepo:  accountRepo,
		transfers:    transfers,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create records a pending request from requester to payer
func (u *UseCase) Create(ctx context.Context, requesterID, payerID, amount, description string) (*entity.PaymentRequest, error) {
	if requesterID == payerID {
		return nil, fmt.Errorf("%w: cannot request money from yourself", errs.ErrInvalidRequest)
	}
	if _, err := u.accountRepo.GetByID(ctx, payerID); err != nil {
		return nil, err
	}

	req, err := entity.NewPaymentRequest(uuid.NewString(), requesterID, payerID, amount, description, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	u.logger.Info("Payment request created", map[string]any{
		"request_id":   req.ID,
		"requester_id": requesterID,
		"payer_id":     payerID,
		"amount":       req.Amount,
	})
	return req, nil
}

// ListIncoming returns pending and settled requests addressed to the payer
func (u *UseCase) ListIncoming(ctx context.Context, payerID string) ([]*entity.PaymentRequest, error) {
	return u.requestRepo.ListByPayer(ctx, payerID)
}

// Accept settles a request by transferring from the payer to the requester.
// Only the payer may accept.
func (u *UseCase) Accept(ctx context.Context, requestID, payerID string) (*entity.Transaction, error) {
	req, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.PayerID != payerID {
		return nil, errs.ErrRequestNotFound
	}

	if err := req.Accept(u.timeProvider); err != nil {
		return nil, err
	}

	// The reference is derived from the request id, so a retried accept
	// (after a crash between the transfer and the status update) replays
	// the recorded transfer instead of paying twice.
	result, err := u.transfers.Transfer(ctx, portuse.TransferRequest{
		FromAccountID: req.PayerID,
		ToAccountID:   req.RequesterID,
		Amount:        req.Amount,
		Description:   req.Description,
		Type:          entity.TypeSend,
		Reference:     "req_" + req.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := u.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	u.logger.Info("Payment request accepted", map[string]any{
		"request_id":     req.ID,
		"transaction_id": result.Transaction.ID,
	})
	return result.Transaction, nil
}

// Decline rejects a request. Only the payer may decline.
func (u *UseCase) Decline(ctx context.Context, requestID, payerID string) error {
	req, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.PayerID != payerID {
		return errs.ErrRequestNotFound
	}

	if err := req.Decline(u.timeProvider); err != nil {
		return err
	}
	return u.requestRepo.Update(ctx, req)
}
