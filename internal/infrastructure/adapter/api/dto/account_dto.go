package dto

import (
	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Role          string `json:"role"`
	KYCStatus     string `json:"kycStatus"`
	Active        bool   `json:"active"`
}

// BalanceResponse represents the API response for an account's balance
type BalanceResponse struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

// NewAccountResponse maps an account entity to its API representation
func NewAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:            account.ID,
		Name:          account.Name,
		Email:         account.Email,
		AccountNumber: account.AccountNumber,
		Balance:       account.FormattedBalance(),
		Role:          string(account.Role),
		KYCStatus:     string(account.KYCStatus),
		Active:        account.Active,
	}
}
