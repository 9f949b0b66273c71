package routes

import (
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/handler"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	transferHandler *handler.TransferHandler,
	adminHandler *handler.AdminHandler,
	requestHandler *handler.RequestHandler,
	tokens *auth.TokenManager,
	logger coreport.Logger,
) {
	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", accountHandler.Register)
		authRoutes.POST("/login", accountHandler.Login)
	}

	// Authenticated routes
	authenticated := router.Group("/")
	authenticated.Use(middleware.RequireAuth(tokens, logger))
	{
		authenticated.GET("/accounts/:id/balance", accountHandler.GetBalance)
		authenticated.GET("/accounts/:id/transactions", accountHandler.GetHistory)

		authenticated.POST("/transfer", transferHandler.Transfer)

		authenticated.POST("/requests", requestHandler.Create)
		authenticated.GET("/requests", requestHandler.ListIncoming)
		authenticated.POST("/requests/:id/accept", requestHandler.Accept)
		authenticated.POST("/requests/:id/decline", requestHandler.Decline)
	}

	// Administrative routes
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(tokens, logger), middleware.RequireAdmin())
	{
		admin.POST("/transaction", adminHandler.ProcessTransaction)
		admin.POST("/accounts/:id/freeze", adminHandler.FreezeAccount)
		admin.POST("/accounts/:id/unfreeze", adminHandler.UnfreezeAccount)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
