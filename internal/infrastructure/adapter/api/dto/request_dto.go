package dto

import (
	"time"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// CreateRequestRequest represents the API request for requesting money
type CreateRequestRequest struct {
	PayerID     string `json:"payerId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// PaymentRequestResponse represents a payment request in API responses
type PaymentRequestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requesterId"`
	PayerID     string    `json:"payerId"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPaymentRequestResponse maps a payment request entity to its API representation
func NewPaymentRequestResponse(req *entity.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		PayerID:     req.PayerID,
		Amount:      req.Amount,
		Status:      string(req.Status),
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}
