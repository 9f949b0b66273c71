package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeInsufficientFunds   = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidAccountID    = 4003
	CodeDuplicateReference  = 4004
	CodeInvalidTransferType = 4005
	CodeAccountInactive     = 4006
	CodeDuplicateAccount    = 4009
	CodeInvalidCredentials  = 4010
	CodeUnauthorized        = 4011
	CodeForbidden           = 4012
	CodeRequestNotPending   = 4013
	CodeAccountNotFound     = 4040
	CodeRequestNotFound     = 4041

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStoreFailure   = 5001
)

// Base error types
var (
	// ErrAccountNotFound is returned when either party of a transfer doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when a non-admin source cannot cover the amount
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountInactive is returned when either party of a transfer is frozen
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidAccountID is returned when an account id is empty or malformed
	ErrInvalidAccountID = errors.New("account ID cannot be empty")

	// ErrInvalidTransferType is returned when the transfer kind is not one of the allowed values
	ErrInvalidTransferType = errors.New("invalid transfer type")

	// ErrDuplicateReference is returned when a transaction with the same reference already exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCompletedImmutable is returned on attempts to move a transaction out of a terminal status
	ErrCompletedImmutable = errors.New("transaction is in a terminal status")

	// ErrDuplicateAccount is returned when registering with an email that is already taken
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials is returned when login credentials don't match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a request lacks a valid session token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated account lacks the required role
	ErrForbidden = errors.New("forbidden")

	// ErrRequestNotFound is returned when the requested payment request doesn't exist
	ErrRequestNotFound = errors.New("payment request not found")

	// ErrRequestNotPending is returned when accepting or declining a settled payment request
	ErrRequestNotPending = errors.New("payment request is not pending")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreFailure is the catch-all for persistence errors
	ErrStoreFailure = errors.New("store failure")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrDuplicateReference):
		return CodeDuplicateReference
	case errors.Is(err, ErrInvalidTransferType):
		return CodeInvalidTransferType
	case errors.Is(err, ErrAccountInactive):
		return CodeAccountInactive
	case errors.Is(err, ErrDuplicateAccount):
		return CodeDuplicateAccount
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrRequestNotPending):
		return CodeRequestNotPending
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrRequestNotFound):
		return CodeRequestNotFound
	case errors.Is(err, ErrStoreFailure):
		return CodeStoreFailure
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError carries balance details for the rejection response
type InsufficientFundsError struct {
	AccountID string
	Requested string
	Available string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for account %s: required %s, available %s",
		e.AccountID, e.Requested, e.Available)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"account_id": e.AccountID,
		"requested":  e.Requested,
		"available":  e.Available,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(accountID, requested, available string) error {
	return &InsufficientFundsError{
		AccountID: accountID,
		Requested: requested,
		Available: available,
	}
}

// TransferError wraps a failure inside the transfer processor with its context
type TransferError struct {
	Reference     string
	FromAccountID string
	ToAccountID   string
	Amount        string
	Reason        string
	Err           error
}

// Error implements the error interface
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s -> %s of %s failed: %s: %v",
		e.FromAccountID, e.ToAccountID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransferError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransferError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "transfer_error",
		"reference":       e.Reference,
		"from_account_id": e.FromAccountID,
		"to_account_id":   e.ToAccountID,
		"amount":          e.Amount,
		"reason":          e.Reason,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewTransferError creates a detailed transfer error
func NewTransferError(reference, fromID, toID, amount, reason string, err error) error {
	return &TransferError{
		Reference:     reference,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Reason:        reason,
		Err:           err,
	}
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAccountInactiveError checks if the error is related to a frozen account
func IsAccountInactiveError(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

// IsDuplicateReferenceError checks if the error is a duplicate reference error
func IsDuplicateReferenceError(err error) bool {
	return errors.Is(err, ErrDuplicateReference)
}

// IsStoreFailureError checks if the error is a persistence failure
func IsStoreFailureError(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}
