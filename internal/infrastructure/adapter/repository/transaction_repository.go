package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the TransactionRepository port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(txn *entity.Transaction) model.Transaction {
	var metadata string
	if len(txn.Metadata) > 0 {
		if raw, err := json.Marshal(txn.Metadata); err == nil {
			metadata = string(raw)
		}
	}

	return model.Transaction{
		ID:            txn.ID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		AmountInCents: txn.AmountInCents,
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		Description:   txn.Description,
		Reference:     txn.Reference,
		Metadata:      metadata,
		ErrorMessage:  txn.ErrorMessage,
		CreatedAt:     txn.CreatedAt,
		CompletedAt:   txn.CompletedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	var metadata map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			r.logger.Warn("Could not decode transaction metadata", map[string]any{
				"transaction_id": m.ID,
				"error":          err.Error(),
			})
		}
	}

	return &entity.Transaction{
		ID:            m.ID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		Type:          entity.TransferType(m.Type),
		Status:        entity.TransactionStatus(m.Status),
		Description:   m.Description,
		Reference:     m.Reference,
		Metadata:      metadata,
		ErrorMessage:  m.ErrorMessage,
		CreatedAt:     m.CreatedAt,
		CompletedAt:   m.CompletedAt,
	}
}

// Create saves a new transaction record
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	m := r.entityToModel(txn)
	result := r.db.WithContext(ctx).Create(&m)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transaction reference", map[string]any{
				"transaction_id": txn.ID,
				"reference":      txn.Reference,
			})
			return errs.ErrDuplicateReference
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": txn.ID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}

	r.logger.Debug("Transaction recorded", map[string]any{
		"transaction_id": txn.ID,
		"reference":      txn.Reference,
		"status":         string(txn.Status),
	})
	return nil
}

// Update writes lifecycle fields back. Amount and parties are deliberately
// excluded: completed records are immutable.
func (r *TransactionRepository) Update(ctx context.Context, txn *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]interface{}{
			"status":        string(txn.Status),
			"completed_at":  txn.CompletedAt,
			"error_message": txn.ErrorMessage,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"transaction_id": txn.ID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByID retrieves a transaction by its identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	return r.modelToEntity(&m), nil
}

// GetByReference retrieves a transaction by its reference code. When a failed
// attempt and a live record share the reference, the live record wins.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("status = 'failed'").
		Order("created_at DESC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	return r.modelToEntity(&m), nil
}

// ReferenceExists checks whether a reference was already recorded
func (r *TransactionRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ?", reference).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	return count > 0, nil
}

// ListByAccount returns the most recent transactions where the account is
// either party
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, r.modelToEntity(&models[i]))
	}
	return transactions, nil
}
