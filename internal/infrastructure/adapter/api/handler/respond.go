package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/faspay-hq/ledger/internal/domain/error"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to an HTTP status and writes the
// standardized error payload
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
	case domainerr.IsInsufficientFundsError(err):
		status = http.StatusBadRequest
	case domainerr.IsAccountInactiveError(err):
		status = http.StatusForbidden
	case domainerr.IsDuplicateReferenceError(err),
		errors.Is(err, domainerr.ErrDuplicateAccount),
		errors.Is(err, domainerr.ErrRequestNotPending):
		status = http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidCredentials),
		errors.Is(err, domainerr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrForbidden):
		status = http.StatusForbidden
	case domainerr.ErrorCode(err) >= 4000 && domainerr.ErrorCode(err) < 5000:
		status = http.StatusBadRequest
	case domainerr.IsStoreFailureError(err):
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid request format: " + err.Error(),
	})
}
