package transfer

import (
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
)

// Validator checks transfer requests before any account row is touched
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks all transfer fields
func (v *Validator) Validate(req portuse.TransferRequest) error {
	if req.FromAccountID == "" || req.ToAccountID == "" {
		return errs.ErrInvalidAccountID
	}

	if req.FromAccountID == req.ToAccountID {
		return fmt.Errorf("%w: source and destination are the same account", errs.ErrInvalidRequest)
	}

	if err := v.validateType(string(req.Type)); err != nil {
		return err
	}

	return v.validateAmount(req.Amount)
}

// validateType checks the transfer kind against the closed enum
func (v *Validator) validateType(transferType string) error {
	if transferType == "" {
		return errs.ErrInvalidTransferType
	}
	if !entity.IsValidTransferType(transferType) {
		return fmt.Errorf("%w: %s", errs.ErrInvalidTransferType, transferType)
	}
	return nil
}

// validateAmount checks the amount is a positive decimal with at most 2 places
func (v *Validator) validateAmount(amount string) error {
	if amount == "" {
		return errs.ErrInvalidAmount
	}
	if _, err := entity.ParsePositiveAmount(amount); err != nil {
		return err
	}
	return nil
}
