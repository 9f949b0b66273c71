package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accountUseCase "github.com/faspay-hq/ledger/internal/domain/usecase/account"
	requestUseCase "github.com/faspay-hq/ledger/internal/domain/usecase/request"
	transferUseCase "github.com/faspay-hq/ledger/internal/domain/usecase/transfer"

	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/handler"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/routes"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/auth"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/database"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/database/migration"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/logger"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/faspay-hq/ledger/internal/infrastructure/adapter/time"
	"github.com/faspay-hq/ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	seeder := migration.NewSeeder(dbManager.DB(), appLogger, tp)
	if err := seeder.SeedAccounts(context.Background()); err != nil {
		appLogger.Error("Failed to seed demo accounts", map[string]any{
			"error": err.Error(),
		})
	}

	// Repositories and unit of work
	accountRepo := repository.NewAccountRepository(dbManager.DB(), tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	requestRepo := repository.NewPaymentRequestRepository(dbManager.DB(), appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Use cases
	accountService := accountUseCase.NewUseCase(accountRepo, transactionRepo, tp, appLogger)
	transferService := transferUseCase.NewService(uow, transactionRepo, tp, appLogger)
	requestService := requestUseCase.NewUseCase(requestRepo, accountRepo, transferService, tp, appLogger)

	// Token manager and API handlers
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	accountHandler := handler.NewAccountHandler(accountService, tokens, appLogger)
	transferHandler := handler.NewTransferHandler(transferService, appLogger)
	adminHandler := handler.NewAdminHandler(transferService, accountService, appLogger)
	requestHandler := handler.NewRequestHandler(requestService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, accountHandler, transferHandler, adminHandler, requestHandler, tokens, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missing = append(missing, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missing = append(missing, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or LS_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or LS_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or LS_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missing = append(missing, "database.queryTimeout")
	}

	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwtSecret (or LS_JWT_SECRET environment variable)")
	}
	if cfg.Auth.TokenTTL == 0 {
		missing = append(missing, "auth.tokenTTL")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}
	return nil
}
