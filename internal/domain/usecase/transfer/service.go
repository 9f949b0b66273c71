package transfer

import (
	"context"
	"net/http"
	"strings"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
)

// Service ties together validation, idempotency and processing for the
// Transfer Processor
type Service struct {
	processor *Processor
	validator *Validator
	refs      *ReferenceChecker
	logger    coreport.Logger
}

// NewService creates a new transfer service
func NewService(
	uow persistence.UnitOfWork,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		processor: NewProcessor(uow, timeProvider, logger),
		validator: NewValidator(),
		refs:      NewReferenceChecker(transactionRepo),
		logger:    logger,
	}
}

// Transfer validates the request, replays duplicates, and otherwise runs the
// processor. The returned result always carries an HTTP status code.
func (s *Service) Transfer(ctx context.Context, req portuse.TransferRequest) (*portuse.TransferResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return s.failure(req, err), err
	}

	// Duplicate references short-circuit before any lock is taken. A
	// reference whose only record is failed moved no money, so it stays
	// open for a retry instead of replaying the failure forever.
	if existing, found, err := s.refs.Lookup(ctx, req.Reference); err != nil {
		wrapped := errs.NewTransferError(req.Reference, req.FromAccountID, req.ToAccountID, req.Amount, "idempotency check failed", err)
		return s.failure(req, wrapped), wrapped
	} else if found && existing.Status != entity.StatusFailed {
		s.logger.Info("Replaying transfer for duplicate reference", map[string]any{
			"reference":      req.Reference,
			"transaction_id": existing.ID,
		})
		return &portuse.TransferResult{
			Success:     existing.Status == entity.StatusCompleted,
			Transaction: existing,
			StatusCode:  http.StatusOK,
		}, nil
	}

	txn, err := s.processor.Process(ctx, req)
	if err != nil {
		s.logger.Error("Transfer processing failed", map[string]any{
			"error":           err.Error(),
			"from_account_id": req.FromAccountID,
			"to_account_id":   req.ToAccountID,
			"amount":          req.Amount,
			"type":            string(req.Type),
		})
		return s.failure(req, err), err
	}

	return &portuse.TransferResult{
		Success:     true,
		Transaction: txn,
		StatusCode:  http.StatusOK,
	}, nil
}

// failure builds a TransferResult for an error, mapping known errors to
// appropriate HTTP status codes
func (s *Service) failure(req portuse.TransferRequest, err error) *portuse.TransferResult {
	statusCode := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errs.IsAccountNotFoundError(err):
		statusCode = http.StatusNotFound

	case errs.IsInsufficientFundsError(err):
		statusCode = http.StatusBadRequest

	case errs.IsAccountInactiveError(err):
		statusCode = http.StatusForbidden

	case errs.IsDuplicateReferenceError(err):
		statusCode = http.StatusConflict

	case errs.ErrorCode(err) >= 4000 && errs.ErrorCode(err) < 5000:
		statusCode = http.StatusBadRequest

	case strings.Contains(strings.ToLower(err.Error()), "deadlock"),
		strings.Contains(strings.ToLower(err.Error()), "serialization"):
		statusCode = http.StatusConflict
		message = "Transfer could not be processed due to concurrent operations. Please try again."
	}

	return &portuse.TransferResult{
		Success:      false,
		ErrorMessage: message,
		StatusCode:   statusCode,
	}
}
