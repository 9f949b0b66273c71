package model

import (
	"time"
)

// Transaction represents the database model for transaction records
type Transaction struct {
	ID            string    `gorm:"primaryKey;size:64"`
	FromAccountID string    `gorm:"not null;index;size:64"`
	ToAccountID   string    `gorm:"not null;index;size:64"`
	Amount        string    `gorm:"not null;size:32"`
	AmountInCents int64     `gorm:"not null"`
	Type          string    `gorm:"not null;size:32"`
	Status        string    `gorm:"not null;size:16"`
	Description   string    `gorm:"type:text"`
	// Uniqueness is enforced by a partial index over non-failed rows so a
	// failed attempt does not consume its reference. See createIndexes.
	Reference     string    `gorm:"index;not null;size:64"`
	Metadata      string    `gorm:"type:text"` // JSON-encoded counterparty info
	ErrorMessage  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null;index"`
	CompletedAt   *time.Time

	FromAccount Account `gorm:"foreignKey:FromAccountID;references:ID"`
	ToAccount   Account `gorm:"foreignKey:ToAccountID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
