package handler

import (
	"github.com/faspay-hq/ledger/internal/domain/entity"
	domainerr "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TransferHandler handles money movement HTTP requests
type TransferHandler struct {
	transfers portuse.TransferUseCase
	logger    coreport.Logger
}

// NewTransferHandler creates a new transfer handler instance
func NewTransferHandler(transfers portuse.TransferUseCase, logger coreport.Logger) *TransferHandler {
	return &TransferHandler{
		transfers: transfers,
		logger:    logger,
	}
}

// Transfer handles the POST /transfer endpoint. The source account is always
// the authenticated caller.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fromAccountID := c.GetString(middleware.ContextAccountID)
	result, err := h.transfers.Transfer(c.Request.Context(), portuse.TransferRequest{
		FromAccountID: fromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
		Type:          entity.TypeSend,
		Reference:     req.Reference,
	})
	if err != nil {
		c.JSON(result.StatusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: result.ErrorMessage,
		})
		return
	}

	c.JSON(result.StatusCode, dto.TransferResponse{
		Success:     result.Success,
		Transaction: dto.NewTransactionResponse(result.Transaction),
	})
}
