package entity

import (
	"fmt"
	"time"

	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
)

// TransferType categorizes a transaction
type TransferType string

// Transfer types
const (
	TypeSend        TransferType = "send"
	TypeAdminCredit TransferType = "admin_credit"
	TypeAdminDebit  TransferType = "admin_debit"
)

// TransactionStatus defines the lifecycle status of a transaction.
// The enum is closed: pending may move to completed, failed or cancelled,
// and terminal statuses never change again.
type TransactionStatus string

// Transaction statuses
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the durable record of one transfer: its parties, amount and
// outcome. Once completed, amount and parties are immutable.
type Transaction struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        string // decimal string with 2 places
	AmountInCents int64
	Type          TransferType
	Status        TransactionStatus
	Description   string
	Reference     string
	Metadata      map[string]string
	ErrorMessage  string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// NewTransaction creates a pending transaction with basic validation
func NewTransaction(
	id string,
	fromAccountID string,
	toAccountID string,
	amount string,
	transferType TransferType,
	description string,
	reference string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if fromAccountID == "" || toAccountID == "" {
		return nil, errs.ErrInvalidAccountID
	}
	if !IsValidTransferType(string(transferType)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransferType, transferType)
	}

	cents, err := ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		ID:            id,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        FormatAmount(cents),
		AmountInCents: cents,
		Type:          transferType,
		Status:        StatusPending,
		Description:   description,
		Reference:     reference,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// IsTerminal reports whether the transaction reached a final status
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed || t.Status == StatusCancelled
}

// MarkCompleted transitions the transaction to completed and stamps the
// completion time. It is the only path to the completed status.
func (t *Transaction) MarkCompleted(timeProvider coreport.TimeProvider) error {
	if t.IsTerminal() {
		return errs.ErrCompletedImmutable
	}
	now := timeProvider.Now()
	t.CompletedAt = &now
	t.Status = StatusCompleted
	return nil
}

// MarkFailed transitions the transaction to failed with a reason
func (t *Transaction) MarkFailed(timeProvider coreport.TimeProvider, errorMessage string) error {
	if t.IsTerminal() {
		return errs.ErrCompletedImmutable
	}
	now := timeProvider.Now()
	t.CompletedAt = &now
	t.Status = StatusFailed
	t.ErrorMessage = errorMessage
	return nil
}

// MarkCancelled transitions the transaction to cancelled
func (t *Transaction) MarkCancelled(timeProvider coreport.TimeProvider) error {
	if t.IsTerminal() {
		return errs.ErrCompletedImmutable
	}
	now := timeProvider.Now()
	t.CompletedAt = &now
	t.Status = StatusCancelled
	return nil
}

// IsValidTransferType validates the transfer type enum
func IsValidTransferType(transferType string) bool {
	return transferType == string(TypeSend) ||
		transferType == string(TypeAdminCredit) ||
		transferType == string(TypeAdminDebit)
}

// IsValidStatus validates the status enum
func IsValidStatus(status string) bool {
	return status == string(StatusPending) ||
		status == string(StatusCompleted) ||
		status == string(StatusFailed) ||
		status == string(StatusCancelled)
}
