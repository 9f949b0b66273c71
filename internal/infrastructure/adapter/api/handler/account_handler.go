package handler

import (
	"net/http"

	domainerr "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles signup, login and account query HTTP requests
type AccountHandler struct {
	accounts portuse.AccountUseCase
	tokens   *auth.TokenManager
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts portuse.AccountUseCase, tokens *auth.TokenManager, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register handles the POST /auth/register endpoint
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), portuse.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		h.logger.Error("Failed to issue token after registration", map[string]any{
			"account_id": account.ID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:   token,
		Account: dto.NewAccountResponse(account),
	})
}

// Login handles the POST /auth/login endpoint
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		h.logger.Error("Failed to issue token", map[string]any{
			"account_id": account.ID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:   token,
		Account: dto.NewAccountResponse(account),
	})
}

// GetBalance handles the GET /accounts/:id/balance endpoint
func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID := c.Param("id")
	if !h.authorizeAccountAccess(c, accountID) {
		return
	}

	balance, err := h.accounts.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: balance.AccountID,
		Balance:   balance.Balance,
	})
}

// GetHistory handles the GET /accounts/:id/transactions endpoint
func (h *AccountHandler) GetHistory(c *gin.Context) {
	accountID := c.Param("id")
	if !h.authorizeAccountAccess(c, accountID) {
		return
	}

	transactions, err := h.accounts.History(c.Request.Context(), accountID, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		responses = append(responses, dto.NewTransactionResponse(txn))
	}
	c.JSON(http.StatusOK, responses)
}

// authorizeAccountAccess allows an account to read only its own data.
// Administrators may read any account.
func (h *AccountHandler) authorizeAccountAccess(c *gin.Context, accountID string) bool {
	caller := c.GetString(middleware.ContextAccountID)
	role := c.GetString(middleware.ContextRole)
	if caller == accountID || role == "admin" {
		return true
	}

	h.logger.Warn("Cross-account access denied", map[string]any{
		"caller_id":  caller,
		"account_id": accountID,
		"path":       c.Request.URL.Path,
	})
	c.JSON(http.StatusForbidden, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
		Message: "You may only access your own account",
	})
	return false
}
