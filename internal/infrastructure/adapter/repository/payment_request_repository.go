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
)

// PaymentRequestRepository implements the PaymentRequestRepository port using GORM
type PaymentRequestRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPaymentRequestRepository creates a new PaymentRequestRepository instance
func NewPaymentRequestRepository(db *gorm.DB, logger coreport.Logger) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: db, logger: logger}
}

func (r *PaymentRequestRepository) entityToModel(req *entity.PaymentRequest) model.PaymentRequest {
	return model.PaymentRequest{
		ID:            req.ID,
		RequesterID:   req.RequesterID,
		PayerID:       req.PayerID,
		Amount:        req.Amount,
		AmountInCents: req.AmountInCents,
		Status:        string(req.Status),
		Description:   req.Description,
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}
}

func (r *PaymentRequestRepository) modelToEntity(m *model.PaymentRequest) *entity.PaymentRequest {
	return &entity.PaymentRequest{
		ID:            m.ID,
		RequesterID:   m.RequesterID,
		PayerID:       m.PayerID,
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		Status:        entity.RequestStatus(m.Status),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create persists a new payment request
func (r *PaymentRequestRepository) Create(ctx context.Context, req *entity.PaymentRequest) error {
	m := r.entityToModel(req)
	if result := r.db.WithContext(ctx).Create(&m); result.Error != nil {
		r.logger.Error("Failed to create payment request", map[string]any{
			"request_id": req.ID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	return nil
}

// GetByID retrieves a payment request by ID
func (r *PaymentRequestRepository) GetByID(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	var m model.PaymentRequest
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	return r.modelToEntity(&m), nil
}

// Update writes the request status back
func (r *PaymentRequestRepository) Update(ctx context.Context, req *entity.PaymentRequest) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentRequest{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status":     string(req.Status),
			"updated_at": req.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrRequestNotFound
	}
	return nil
}

// ListByPayer returns requests addressed to the given payer, newest first
func (r *PaymentRequestRepository) ListByPayer(ctx context.Context, payerID string) ([]*entity.PaymentRequest, error) {
	var models []model.PaymentRequest
	result := r.db.WithContext(ctx).
		Where("payer_id = ?", payerID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreFailure, result.Error.Error())
	}

	requests := make([]*entity.PaymentRequest, 0, len(models))
	for i := range models {
		requests = append(requests, r.modelToEntity(&models[i]))
	}
	return requests, nil
}
