package entity

import (
	"time"

	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
)

// Role distinguishes ordinary customers from the administrative issuer
type Role string

// Roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// KYCStatus represents the verification state of an account
type KYCStatus string

// KYC statuses
const (
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// Account is a ledger entity holding a monetary balance. The balance is kept
// private so it is only mutated through Credit and Debit, which enforce the
// non-negativity invariant for ordinary accounts.
type Account struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	AccountNumber    string
	balance          int64 // cents
	Active           bool
	Role             Role
	KYCStatus        KYCStatus
	PasswordHash     string
	TransactionCount uint64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewAccount creates an account with the given identity and initial balance.
// Registration always passes "0.00"; seeds use non-zero demo balances.
func NewAccount(id, name, email string, role Role, initialBalance string, timeProvider coreport.TimeProvider) (*Account, error) {
	if id == "" {
		return nil, errs.ErrInvalidAccountID
	}

	cents, err := ParseAmount(initialBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Account{
		ID:        id,
		Name:      name,
		Email:     email,
		balance:   cents,
		Active:    true,
		Role:      role,
		KYCStatus: KYCPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (a *Account) Balance() int64 {
	return a.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (a *Account) FormattedBalance() string {
	return FormatAmount(a.balance)
}

// SetBalance overwrites the balance directly. Repositories use it when
// hydrating entities from stored rows.
func (a *Account) SetBalance(cents int64, timeProvider coreport.TimeProvider) {
	a.balance = cents
	a.UpdatedAt = timeProvider.Now()
}

// IsAdmin reports whether this account is the administrative issuer
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanCover reports whether the balance covers a debit of the given amount.
// Administrative accounts always can: issuance is unbounded.
func (a *Account) CanCover(cents int64) bool {
	return a.IsAdmin() || a.balance >= cents
}

// Credit adds the amount to the balance
func (a *Account) Credit(cents int64, timeProvider coreport.TimeProvider) {
	a.balance += cents
	a.UpdatedAt = timeProvider.Now()
	a.TransactionCount++
}

// Debit subtracts the amount from the balance. Ordinary accounts must stay
// non-negative; the administrative issuer may go below zero.
func (a *Account) Debit(cents int64, timeProvider coreport.TimeProvider) error {
	if !a.CanCover(cents) {
		return errs.ErrInsufficientFunds
	}
	a.balance -= cents
	a.UpdatedAt = timeProvider.Now()
	a.TransactionCount++
	return nil
}

// Deactivate freezes the account. Frozen accounts can neither send nor receive.
func (a *Account) Deactivate(timeProvider coreport.TimeProvider) {
	a.Active = false
	a.UpdatedAt = timeProvider.Now()
}

// Activate unfreezes the account
func (a *Account) Activate(timeProvider coreport.TimeProvider) {
	a.Active = true
	a.UpdatedAt = timeProvider.Now()
}
