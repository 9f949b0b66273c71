package usecase

import (
	"context"

	"github.com/faspay-hq/ledger/internal/domain/entity"
)

// RegisterRequest carries the fields collected at signup
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// BalanceResponse is the standardized balance payload
type BalanceResponse struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"` // formatted with 2 decimal places
}

// AccountUseCase defines account-related business operations
type AccountUseCase interface {
	// Register creates an account with a zero balance and a hashed password
	Register(ctx context.Context, req RegisterRequest) (*entity.Account, error)

	// Authenticate verifies email and password and returns the account
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)

	// GetBalance retrieves the formatted balance for an account
	GetBalance(ctx context.Context, accountID string) (*BalanceResponse, error)

	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, accountID string) (*entity.Account, error)

	// SetActive freezes or unfreezes an account
	SetActive(ctx context.Context, accountID string, active bool) error

	// History returns the most recent transactions touching the account
	History(ctx context.Context, accountID string, limit int) ([]*entity.Transaction, error)
}
