package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{ErrInsufficientFunds, CodeInsufficientFunds},
		{ErrInvalidAmount, CodeInvalidAmount},
		{ErrNegativeAmount, CodeInvalidAmount},
		{ErrInvalidAccountID, CodeInvalidAccountID},
		{ErrDuplicateReference, CodeDuplicateReference},
		{ErrInvalidTransferType, CodeInvalidTransferType},
		{ErrAccountInactive, CodeAccountInactive},
		{ErrDuplicateAccount, CodeDuplicateAccount},
		{ErrInvalidCredentials, CodeInvalidCredentials},
		{ErrUnauthorized, CodeUnauthorized},
		{ErrForbidden, CodeForbidden},
		{ErrInvalidRequest, CodeInvalidRequest},
		{ErrRequestNotPending, CodeRequestNotPending},
		{ErrAccountNotFound, CodeAccountNotFound},
		{ErrRequestNotFound, CodeRequestNotFound},
		{ErrStoreFailure, CodeStoreFailure},
		{ErrInternalServer, CodeInternalServer},
		{errors.New("something else"), CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}

	t.Run("Wrapped errors keep their code", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: row missing", ErrAccountNotFound)
		assert.Equal(t, CodeAccountNotFound, ErrorCode(wrapped))
	})
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("acc-1", "30.00", "10.00")

	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.True(t, IsInsufficientFundsError(err))
	assert.Contains(t, err.Error(), "acc-1")
	assert.Contains(t, err.Error(), "30.00")
	assert.Contains(t, err.Error(), "10.00")

	var detailed *InsufficientFundsError
	assert.True(t, errors.As(err, &detailed))

	fields := detailed.LogFields()
	assert.Equal(t, "acc-1", fields["account_id"])
	assert.Equal(t, CodeInsufficientFunds, fields["error_code"])
}

func TestTransferError(t *testing.T) {
	cause := ErrStoreFailure
	err := NewTransferError("REF1", "acc-a", "acc-b", "30.00", "failed to credit destination", cause)

	assert.True(t, errors.Is(err, ErrStoreFailure))
	assert.True(t, IsStoreFailureError(err))

	var transferErr *TransferError
	assert.True(t, errors.As(err, &transferErr))
	assert.Equal(t, cause, transferErr.Unwrap())

	fields := transferErr.LogFields()
	assert.Equal(t, "REF1", fields["reference"])
	assert.Equal(t, "acc-a", fields["from_account_id"])
	assert.Equal(t, CodeStoreFailure, fields["error_code"])
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsAccountNotFoundError(ErrAccountNotFound))
	assert.True(t, IsAccountInactiveError(ErrAccountInactive))
	assert.True(t, IsDuplicateReferenceError(ErrDuplicateReference))

	assert.True(t, IsNotFoundError(ErrAccountNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.True(t, IsNotFoundError(ErrRequestNotFound))
	assert.False(t, IsNotFoundError(ErrInsufficientFunds))
}
