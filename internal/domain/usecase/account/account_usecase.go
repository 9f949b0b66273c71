package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// defaultHistoryLimit bounds history queries when the caller does not ask
// for a specific page size
const defaultHistoryLimit = 50

// UseCase handles account-related business logic
type UseCase struct {
	accountRepo     persistence.AccountRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewUseCase creates a new account UseCase
func NewUseCase(
	accountRepo persistence.AccountRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Register creates an account with a zero balance and a bcrypt-hashed password
func (u *UseCase) Register(ctx context.Context, req portuse.RegisterRequest) (*entity.Account, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", errs.ErrInvalidRequest)
	}

	if _, err := u.accountRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errs.ErrDuplicateAccount
	} else if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %s", errs.ErrInternalServer, err.Error())
	}

	acct, err := entity.NewAccount(uuid.NewString(), req.Name, req.Email, entity.RoleUser, "0.00", u.timeProvider)
	if err != nil {
		return nil, err
	}
	acct.Phone = req.Phone
	acct.AccountNumber = NewAccountNumber()
	acct.PasswordHash = string(hash)

	if err := u.accountRepo.Create(ctx, acct); err != nil {
		return nil, err
	}

	u.logger.Info("Account registered", map[string]any{
		"account_id":     acct.ID,
		"account_number": acct.AccountNumber,
	})
	return acct, nil
}

// Authenticate verifies email and password
func (u *UseCase) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	acct, err := u.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	return acct, nil
}

// GetBalance retrieves the formatted balance for an account
func (u *UseCase) GetBalance(ctx context.Context, accountID string) (*portuse.BalanceResponse, error) {
	acct, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &portuse.BalanceResponse{
		AccountID: acct.ID,
		Balance:   acct.FormattedBalance(),
	}, nil
}

// GetAccount retrieves an account by ID
func (u *UseCase) GetAccount(ctx context.Context, accountID string) (*entity.Account, error) {
	return u.accountRepo.GetByID(ctx, accountID)
}

// SetActive freezes or unfreezes an account
func (u *UseCase) SetActive(ctx context.Context, accountID string, active bool) error {
	acct, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if active {
		acct.Activate(u.timeProvider)
	} else {
		acct.Deactivate(u.timeProvider)
	}

	if err := u.accountRepo.Update(ctx, acct); err != nil {
		return err
	}

	u.logger.Info("Account activity flag changed", map[string]any{
		"account_id": accountID,
		"active":     active,
	})
	return nil
}

// History returns the most recent transactions touching the account
func (u *UseCase) History(ctx context.Context, accountID string, limit int) ([]*entity.Transaction, error) {
	if _, err := u.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return u.transactionRepo.ListByAccount(ctx, accountID, limit)
}

// NewAccountNumber generates a ten-digit account number
func NewAccountNumber() string {
	return fmt.Sprintf("%010d", rand.Int63n(10_000_000_000))
}
