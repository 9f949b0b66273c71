package handler

import (
	"net/http"

	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	requestUseCase "github.com/faspay-hq/ledger/internal/domain/usecase/request"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles payment request HTTP endpoints
type RequestHandler struct {
	requests *requestUseCase.UseCase
	logger   coreport.Logger
}

// NewRequestHandler creates a new request handler instance
func NewRequestHandler(requests *requestUseCase.UseCase, logger coreport.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		logger:   logger,
	}
}

// Create handles the POST /requests endpoint
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	requesterID := c.GetString(middleware.ContextAccountID)
	created, err := h.requests.Create(c.Request.Context(), requesterID, req.PayerID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPaymentRequestResponse(created))
}

// ListIncoming handles the GET /requests endpoint, returning requests
// addressed to the authenticated account
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	payerID := c.GetString(middleware.ContextAccountID)
	requests, err := h.requests.ListIncoming(c.Request.Context(), payerID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.PaymentRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, dto.NewPaymentRequestResponse(req))
	}
	c.JSON(http.StatusOK, responses)
}

// Accept handles the POST /requests/:id/accept endpoint
func (h *RequestHandler) Accept(c *gin.Context) {
	requestID := c.Param("id")
	payerID := c.GetString(middleware.ContextAccountID)

	txn, err := h.requests.Accept(c.Request.Context(), requestID, payerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Success:     true,
		Transaction: dto.NewTransactionResponse(txn),
	})
}

// Decline handles the POST /requests/:id/decline endpoint
func (h *RequestHandler) Decline(c *gin.Context) {
	requestID := c.Param("id")
	payerID := c.GetString(middleware.ContextAccountID)

	if err := h.requests.Decline(c.Request.Context(), requestID, payerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
