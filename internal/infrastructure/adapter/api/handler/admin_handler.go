package handler

import (
	"net/http"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	domainerr "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles administrative HTTP requests: issuing and withdrawing
// funds, and freezing accounts
type AdminHandler struct {
	transfers portuse.TransferUseCase
	accounts  portuse.AccountUseCase
	logger    coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(transfers portuse.TransferUseCase, accounts portuse.AccountUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		transfers: transfers,
		accounts:  accounts,
		logger:    logger,
	}
}

// ProcessTransaction handles the POST /admin/transaction endpoint.
// An admin credit issues funds from the admin account to the target; an admin
// debit withdraws funds from the target back to the admin account.
func (h *AdminHandler) ProcessTransaction(c *gin.Context) {
	var req dto.AdminTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	adminID := c.GetString(middleware.ContextAccountID)
	transferReq := portuse.TransferRequest{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        entity.TransferType(req.Type),
	}
	switch entity.TransferType(req.Type) {
	case entity.TypeAdminCredit:
		transferReq.FromAccountID = adminID
		transferReq.ToAccountID = req.TargetAccountID
	case entity.TypeAdminDebit:
		transferReq.FromAccountID = req.TargetAccountID
		transferReq.ToAccountID = adminID
	default:
		// Binding already restricts the type; this guards the routing
		// logic if the accepted set ever grows.
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidTransferType),
			Message: domainerr.ErrInvalidTransferType.Error(),
		})
		return
	}

	result, err := h.transfers.Transfer(c.Request.Context(), transferReq)
	if err != nil {
		c.JSON(result.StatusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: result.ErrorMessage,
		})
		return
	}

	h.logger.Info("Administrative transaction processed", map[string]any{
		"admin_id":       adminID,
		"target_id":      req.TargetAccountID,
		"type":           req.Type,
		"amount":         req.Amount,
		"transaction_id": result.Transaction.ID,
	})
	c.JSON(result.StatusCode, dto.TransferResponse{
		Success:     result.Success,
		Transaction: dto.NewTransactionResponse(result.Transaction),
	})
}

// FreezeAccount handles the POST /admin/accounts/:id/freeze endpoint
func (h *AdminHandler) FreezeAccount(c *gin.Context) {
	h.setActive(c, false)
}

// UnfreezeAccount handles the POST /admin/accounts/:id/unfreeze endpoint
func (h *AdminHandler) UnfreezeAccount(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	accountID := c.Param("id")
	if err := h.accounts.SetActive(c.Request.Context(), accountID, active); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Account active flag updated", map[string]any{
		"account_id": accountID,
		"active":     active,
		"admin_id":   c.GetString(middleware.ContextAccountID),
	})

	account, err := h.accounts.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}
