package persistence

import (
	"context"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// PaymentRequestRepository defines the methods for payment requests
type PaymentRequestRepository interface {
	// Create persists a new payment request
	Create(ctx context.Context, request *entity.PaymentRequest) error

	// GetByID retrieves a payment request by ID
	//
	// Possible errors:
	// - ErrRequestNotFound
	// - ErrStoreFailure
	GetByID(ctx context.Context, id string) (*entity.PaymentRequest, error)

	// Update writes the request status back
	Update(ctx context.Context, request *entity.PaymentRequest) error

	// ListByPayer returns requests addressed to the given payer, newest first
	ListByPayer(ctx context.Context, payerID string) ([]*entity.PaymentRequest, error)
}
