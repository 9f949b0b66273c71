package model

import (
	"time"
)

// Account represents the database model for ledger accounts
type Account struct {
	ID               string    `gorm:"primaryKey;size:64"`
	Name             string    `gorm:"not null;size:255"`
	Email            string    `gorm:"uniqueIndex;not null;size:255"`
	Phone            string    `gorm:"size:32"`
	AccountNumber    string    `gorm:"uniqueIndex;size:32"`
	Balance          int64     `gorm:"not null"` // cents
	Active           bool      `gorm:"not null;default:true"`
	Role             string    `gorm:"not null;size:16"`
	KYCStatus        string    `gorm:"not null;size:16"`
	PasswordHash     string    `gorm:"size:255"`
	TransactionCount uint64    `gorm:"default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
