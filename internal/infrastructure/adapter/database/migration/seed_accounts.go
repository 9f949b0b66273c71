package migration

import (
	"context"
	"errors"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedAccount describes one demo account created on an empty database
type seedAccount struct {
	Name          string
	Email         string
	AccountNumber string
	BalanceCents  int64
	Role          entity.Role
	Password      string
}

// demoAccounts are the accounts a fresh deployment starts with
var demoAccounts = []seedAccount{
	{Name: "John Doe", Email: "john@example.com", AccountNumber: "1000000001", BalanceCents: 250000, Role: entity.RoleUser, Password: "password123"},
	{Name: "Sarah Johnson", Email: "sarah@example.com", AccountNumber: "1000000002", BalanceCents: 180000, Role: entity.RoleUser, Password: "password123"},
	{Name: "Mike Wilson", Email: "mike@example.com", AccountNumber: "1000000003", BalanceCents: 320000, Role: entity.RoleUser, Password: "password123"},
	{Name: "Platform Admin", Email: "admin@example.com", AccountNumber: "9000000001", BalanceCents: 0, Role: entity.RoleAdmin, Password: "admin123"},
}

// Seeder inserts demo accounts into an empty database
type Seeder struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewSeeder creates a new seeder
func NewSeeder(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Seeder {
	return &Seeder{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// SeedAccounts creates the demo accounts if they do not exist yet.
// Existing accounts are never modified, so re-running after transfers
// leaves balances alone.
func (s *Seeder) SeedAccounts(ctx context.Context) error {
	now := s.timeProvider.Now()

	for _, seed := range demoAccounts {
		var existing model.Account
		err := s.db.WithContext(ctx).First(&existing, "email = ?", seed.Email).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		account := model.Account{
			ID:            uuid.NewString(),
			Name:          seed.Name,
			Email:         seed.Email,
			AccountNumber: seed.AccountNumber,
			Balance:       seed.BalanceCents,
			Active:        true,
			Role:          string(seed.Role),
			KYCStatus:     string(entity.KYCVerified),
			PasswordHash:  string(hash),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
			s.logger.Error("Failed to seed account", map[string]any{
				"email": seed.Email,
				"error": err.Error(),
			})
			return err
		}

		s.logger.Info("Seeded account", map[string]any{
			"email":   seed.Email,
			"role":    string(seed.Role),
			"balance": entity.FormatAmount(seed.BalanceCents),
		})
	}
	return nil
}
