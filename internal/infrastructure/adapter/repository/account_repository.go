package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements the AccountRepository port using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to a domain entity
func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	acct := &entity.Account{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		AccountNumber:    m.AccountNumber,
		Active:           m.Active,
		Role:             entity.Role(m.Role),
		KYCStatus:        entity.KYCStatus(m.KYCStatus),
		PasswordHash:     m.PasswordHash,
		TransactionCount: m.TransactionCount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	acct.SetBalance(m.Balance, r.timeProvider)
	acct.UpdatedAt = m.UpdatedAt
	return acct
}

// entityToModel converts a domain entity to an account model
func (r *AccountRepository) entityToModel(acct *entity.Account) model.Account {
	return model.Account{
		ID:               acct.ID,
		Name:             acct.Name,
		Email:            acct.Email,
		Phone:            acct.Phone,
		AccountNumber:    acct.AccountNumber,
		Balance:          acct.Balance(),
		Active:           acct.Active,
		Role:             string(acct.Role),
		KYCStatus:        string(acct.KYCStatus),
		PasswordHash:     acct.PasswordHash,
		TransactionCount: acct.TransactionCount,
		CreatedAt:        acct.CreatedAt,
		UpdatedAt:        acct.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Account not found", map[string]any{
			"account_id": accountID,
			"operation":  operation,
		})
		return errs.ErrAccountNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate account operation", map[string]any{
			"account_id": accountID,
		})
		return errs.ErrDuplicateAccount
	}

	fields := map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	}
	if r.errorClassifier.IsConnectionError(err) {
		fields["connectivity"] = true
	} else if r.errorClassifier.IsLockError(err) {
		fields["lock_conflict"] = true
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	return fmt.Errorf("%w: %s", errs.ErrStoreFailure, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}
	return r.modelToEntity(&m), nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).First(&m, "email = ?", email)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account by email", result.Error, email)
	}
	return r.modelToEntity(&m), nil
}

// GetForUpdate retrieves an account with an exclusive row lock. Callers must
// be inside a unit-of-work transaction for the lock to mean anything.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, id)
	}

	r.logger.Debug("Account row locked", map[string]any{
		"account_id": id,
	})
	return r.modelToEntity(&m), nil
}

// Create persists a new account
func (r *AccountRepository) Create(ctx context.Context, acct *entity.Account) error {
	m := r.entityToModel(acct)
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, acct.ID)
	}

	r.logger.Info("Account created", map[string]any{
		"account_id": acct.ID,
		"role":       string(acct.Role),
	})
	return nil
}

// Update writes mutable account fields back to the row
func (r *AccountRepository) Update(ctx context.Context, acct *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", acct.ID).
		Updates(map[string]interface{}{
			"balance":           acct.Balance(),
			"active":            acct.Active,
			"kyc_status":        string(acct.KYCStatus),
			"transaction_count": acct.TransactionCount,
			"updated_at":        acct.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating account", result.Error, acct.ID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Account not found during update", map[string]any{
			"account_id": acct.ID,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Debug("Account updated", map[string]any{
		"account_id": acct.ID,
		"balance":    acct.FormattedBalance(),
		"active":     acct.Active,
	})
	return nil
}
