package dto

import (
	"time"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// TransferRequest represents the API request for sending money
type TransferRequest struct {
	ToAccountID string `json:"toAccountId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Reference   string `json:"reference"` // optional; supplied for idempotent retries
}

// AdminTransactionRequest represents the API request for administrative
// credit and debit operations
type AdminTransactionRequest struct {
	Type            string `json:"type" binding:"required,oneof=admin_credit admin_debit"`
	TargetAccountID string `json:"targetAccountId" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	Description     string `json:"description"`
}

// TransactionResponse represents a transaction record in API responses
type TransactionResponse struct {
	ID            string     `json:"id"`
	FromAccountID string     `json:"fromAccountId"`
	ToAccountID   string     `json:"toAccountId"`
	Amount        string     `json:"amount"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Description   string     `json:"description,omitempty"`
	Reference     string     `json:"reference"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// TransferResponse represents the API response for a processed transfer
type TransferResponse struct {
	Success      bool                `json:"success"`
	Transaction  TransactionResponse `json:"transaction"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
}

// NewTransactionResponse maps a transaction entity to its API representation
func NewTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		Description:   txn.Description,
		Reference:     txn.Reference,
		CreatedAt:     txn.CreatedAt,
		CompletedAt:   txn.CompletedAt,
	}
}
