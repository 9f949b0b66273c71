package model

import (
	"time"
)

// PaymentRequest represents the database model for payment requests
type PaymentRequest struct {
	ID            string    `gorm:"primaryKey;size:64"`
	RequesterID   string    `gorm:"not null;index;size:64"`
	PayerID       string    `gorm:"not null;index;size:64"`
	Amount        string    `gorm:"not null;size:32"`
	AmountInCents int64     `gorm:"not null"`
	Status        string    `gorm:"not null;size:16"`
	Description   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Requester Account `gorm:"foreignKey:RequesterID;references:ID"`
	Payer     Account `gorm:"foreignKey:PayerID;references:ID"`
}

// TableName specifies the table name for PaymentRequest
func (PaymentRequest) TableName() string {
	return "payment_requests"
}
