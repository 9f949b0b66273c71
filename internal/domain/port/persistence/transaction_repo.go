package persistence

import (
	"context"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// TransactionRepository defines the methods for transaction records
type TransactionRepository interface {
	// Create saves a new transaction record
	//
	// Possible errors:
	// - ErrDuplicateReference: if a record with the same reference exists
	// - ErrStoreFailure
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update writes status, completion time and error message back.
	// Amount and parties are never updated; terminal records are immutable.
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStoreFailure
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStoreFailure
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// GetByReference retrieves a transaction by its reference code,
	// used for idempotent replay of duplicate submissions
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStoreFailure
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// ReferenceExists checks whether a reference was already recorded
	//
	// Possible errors:
	// - ErrStoreFailure
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// ListByAccount returns the most recent transactions where the account
	// is either party, newest first
	//
	// Possible errors:
	// - ErrStoreFailure
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.Transaction, error)
}
