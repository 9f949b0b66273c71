package usecase

import (
	"context"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// TransferRequest represents an incoming transfer
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        string
	Description   string
	Type          entity.TransferType
	Reference     string            // optional; supplied for idempotent retries
	Metadata      map[string]string // counterparty display info for admin transfers
}

// TransferResult contains info about a processed transfer
type TransferResult struct {
	Success      bool
	Transaction  *entity.Transaction
	ErrorMessage string
	StatusCode   int // HTTP status code
}

// TransferUseCase is the Transfer Processor contract: verify preconditions,
// move the amount, record the outcome
type TransferUseCase interface {
	// Transfer processes one debit-then-credit operation between two accounts
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}
