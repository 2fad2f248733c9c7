package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentInfo holds the card details attached to a customer.
type PaymentInfo struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           string    `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	Card           string    `gorm:"column:card;not null"`
	CardName       string    `gorm:"column:card_name;not null"`
	ExpiredDate    string    `gorm:"column:expired_date;not null"`
	CardValidation string    `gorm:"column:card_validation;not null"`
	CustomerID     int64     `gorm:"column:customer_id;not null;uniqueIndex"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *PaymentInfo) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
