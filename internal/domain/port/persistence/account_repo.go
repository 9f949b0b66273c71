package persistence

import (
	"context"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// AccountRepository defines the methods the ledger needs against account rows
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account with the given ID exists
	// - ErrStoreFailure: if the store is unreachable
	GetByID(ctx context.Context, id string) (*entity.Account, error)

	// GetByEmail retrieves an account by email, used by login and duplicate checks
	//
	// Possible errors:
	// - ErrAccountNotFound
	// - ErrStoreFailure
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)

	// GetForUpdate retrieves an account and acquires an exclusive row lock.
	// Only meaningful inside a unit-of-work transaction; the transfer
	// processor locks both parties this way before touching balances.
	//
	// Possible errors:
	// - ErrAccountNotFound
	// - ErrStoreFailure
	GetForUpdate(ctx context.Context, id string) (*entity.Account, error)

	// Create persists a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: if the id, email or account number is taken
	// - ErrStoreFailure
	Create(ctx context.Context, account *entity.Account) error

	// Update writes balance, activity flag and counters back to the row
	//
	// Possible errors:
	// - ErrAccountNotFound
	// - ErrStoreFailure
	Update(ctx context.Context, account *entity.Account) error
}
