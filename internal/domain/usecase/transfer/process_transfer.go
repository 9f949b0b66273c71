package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
)

// Processor executes one transfer inside a single database transaction.
// Both account rows are locked in ascending id order, so two mirror-image
// transfers cannot deadlock, and the debit, credit and record writes commit
// together or not at all.
type Processor struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewProcessor creates a new Processor
func NewProcessor(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Processor {
	return &Processor{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Process runs the transfer. Precondition order: both accounts must exist,
// a non-admin source must cover the amount, both accounts must be active.
// Any precondition failure rolls back with no state mutation.
func (p *Processor) Process(ctx context.Context, req portuse.TransferRequest) (*entity.Transaction, error) {
	cents, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, err.Error())
	}

	txn, err := p.processLocked(txCtx, req, cents)
	if err != nil {
		if rbErr := p.uow.Rollback(txCtx); rbErr != nil {
			p.logger.Error("Rollback failed after transfer error", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		// A store failure after the preconditions passed leaves an audit
		// trail: the rolled-back record is re-written as failed.
		if txn != nil && errs.IsStoreFailureError(err) {
			p.recordFailure(ctx, txn, err)
		}
		return nil, err
	}

	if err := p.uow.Commit(txCtx); err != nil {
		p.logger.Error("Failed to commit transfer", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		commitErr := fmt.Errorf("%w: commit failed: %s", errs.ErrStoreFailure, err.Error())
		p.recordFailure(ctx, txn, commitErr)
		return nil, commitErr
	}

	p.logger.Info("Transfer completed", map[string]any{
		"transaction_id":  txn.ID,
		"reference":       txn.Reference,
		"from_account_id": txn.FromAccountID,
		"to_account_id":   txn.ToAccountID,
		"amount":          txn.Amount,
		"type":            string(txn.Type),
	})

	return txn, nil
}

// processLocked performs all reads and writes inside the open transaction.
// It returns the in-flight transaction record alongside the error so the
// caller can persist a failure trail when appropriate.
func (p *Processor) processLocked(txCtx context.Context, req portuse.TransferRequest, cents int64) (*entity.Transaction, error) {
	accounts := p.uow.GetAccountRepository(txCtx)
	records := p.uow.GetTransactionRepository(txCtx)

	from, to, err := p.lockParties(txCtx, accounts, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	if !from.CanCover(cents) {
		return nil, errs.NewInsufficientFundsError(from.ID, entity.FormatAmount(cents), from.FormattedBalance())
	}

	if !from.Active || !to.Active {
		return nil, errs.ErrAccountInactive
	}

	reference := req.Reference
	if reference == "" {
		reference = NewReference()
	}

	txn, err := entity.NewTransaction(
		NewTransactionID(),
		from.ID,
		to.ID,
		req.Amount,
		req.Type,
		req.Description,
		reference,
		p.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	txn.Metadata = buildMetadata(from, to, req.Metadata)

	if err := records.Create(txCtx, txn); err != nil {
		if errors.Is(err, errs.ErrDuplicateReference) {
			// Lost a race with a concurrent submission of the same reference.
			return nil, err
		}
		return txn, fmt.Errorf("%w: failed to record transaction: %s", errs.ErrStoreFailure, err.Error())
	}

	// The administrative issuer is not debited when it acts purely as a
	// credit source; its issuance authority is unbounded.
	if !(req.Type == entity.TypeAdminCredit && from.IsAdmin()) {
		if err := from.Debit(cents, p.timeProvider); err != nil {
			return nil, errs.NewInsufficientFundsError(from.ID, entity.FormatAmount(cents), from.FormattedBalance())
		}
		if err := accounts.Update(txCtx, from); err != nil {
			return txn, fmt.Errorf("%w: failed to debit source: %s", errs.ErrStoreFailure, err.Error())
		}
	}

	to.Credit(cents, p.timeProvider)
	if err := accounts.Update(txCtx, to); err != nil {
		return txn, fmt.Errorf("%w: failed to credit destination: %s", errs.ErrStoreFailure, err.Error())
	}

	if err := txn.MarkCompleted(p.timeProvider); err != nil {
		return txn, err
	}
	if err := records.Update(txCtx, txn); err != nil {
		return txn, fmt.Errorf("%w: failed to complete transaction: %s", errs.ErrStoreFailure, err.Error())
	}

	return txn, nil
}

// lockParties locks both account rows in ascending id order and returns them
// as (from, to)
func (p *Processor) lockParties(txCtx context.Context, accounts persistence.AccountRepository, fromID, toID string) (*entity.Account, *entity.Account, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := accounts.GetForUpdate(txCtx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := accounts.GetForUpdate(txCtx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

// recordFailure writes a failed transaction record outside the rolled-back
// transaction, best effort
func (p *Processor) recordFailure(ctx context.Context, txn *entity.Transaction, cause error) {
	failed := *txn
	failed.Status = entity.StatusPending
	failed.CompletedAt = nil
	if err := failed.MarkFailed(p.timeProvider, cause.Error()); err != nil {
		return
	}

	records := p.uow.GetTransactionRepository(ctx)
	if err := records.Create(ctx, &failed); err != nil {
		p.logger.Warn("Could not persist failed transaction record", map[string]any{
			"transaction_id": failed.ID,
			"error":          err.Error(),
		})
	}
}

// buildMetadata merges counterparty display info with caller-supplied metadata
func buildMetadata(from, to *entity.Account, extra map[string]string) map[string]string {
	meta := map[string]string{
		"fromName": from.Name,
		"toName":   to.Name,
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}
