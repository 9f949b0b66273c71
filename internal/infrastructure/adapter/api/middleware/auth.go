package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

// RequireAuth verifies the Bearer token and stores the account identity in
// the request context
func RequireAuth(tokens *auth.TokenManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Warn("Token verification failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextAccountID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Administrative privileges required",
			})
			return
		}
		c.Next()
	}
}
