package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
)

// ReferenceChecker provides idempotency checking for caller-supplied
// references: resubmitting the same reference replays the recorded outcome
// instead of moving money twice
type ReferenceChecker struct {
	transactionRepo persistence.TransactionRepository
}

// NewReferenceChecker creates a new ReferenceChecker
func NewReferenceChecker(transactionRepo persistence.TransactionRepository) *ReferenceChecker {
	return &ReferenceChecker{transactionRepo: transactionRepo}
}

// Lookup returns the previously recorded transaction for a reference, if any
func (c *ReferenceChecker) Lookup(ctx context.Context, reference string) (*entity.Transaction, bool, error) {
	if reference == "" {
		return nil, false, nil
	}

	exists, err := c.transactionRepo.ReferenceExists(ctx, reference)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check reference: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	txn, err := c.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			// Existed a moment ago but is gone now; treat as new.
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("failed to retrieve existing transaction: %w", err)
	}

	return txn, true, nil
}
