package entity

import (
	"time"

	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
)

// RequestStatus is the lifecycle status of a payment request
type RequestStatus string

// Request statuses
const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// PaymentRequest asks another account holder to pay the requester.
// Accepting one runs an ordinary transfer from the payer to the requester.
type PaymentRequest struct {
	ID            string
	RequesterID   string
	PayerID       string
	Amount        string
	AmountInCents int64
	Status        RequestStatus
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPaymentRequest creates a pending payment request
func NewPaymentRequest(id, requesterID, payerID, amount, description string, timeProvider coreport.TimeProvider) (*PaymentRequest, error) {
	if requesterID == "" || payerID == "" {
		return nil, errs.ErrInvalidAccountID
	}

	cents, err := ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &PaymentRequest{
		ID:            id,
		RequesterID:   requesterID,
		PayerID:       payerID,
		Amount:        FormatAmount(cents),
		AmountInCents: cents,
		Status:        RequestPending,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Accept marks the request accepted. Only pending requests can settle.
func (r *PaymentRequest) Accept(timeProvider coreport.TimeProvider) error {
	if r.Status != RequestPending {
		return errs.ErrRequestNotPending
	}
	r.Status = RequestAccepted
	r.UpdatedAt = timeProvider.Now()
	return nil
}

// Decline marks the request declined
func (r *PaymentRequest) Decline(timeProvider coreport.TimeProvider) error {
	if r.Status != RequestPending {
		return errs.ErrRequestNotPending
	}
	r.Status = RequestDeclined
	r.UpdatedAt = timeProvider.Now()
	return nil
}
