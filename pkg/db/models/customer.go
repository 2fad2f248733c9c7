package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents the shopper profile owning orders and contact records.
type Customer struct {
	ID          int64         `gorm:"column:id;primaryKey;autoIncrement"`
	UUID        string        `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	Firstname   string        `gorm:"column:firstname;not null"`
	Lastname    string        `gorm:"column:lastname;not null"`
	UserID      int64         `gorm:"column:user_id;not null"`
	User        *User         `gorm:"foreignKey:UserID"`
	Info        *CustomerInfo `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	PaymentInfo *PaymentInfo  `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Orders      []Order       `gorm:"foreignKey:CustomerID"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}
