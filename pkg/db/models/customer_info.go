package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerInfo holds the shipping address attached to a customer.
type CustomerInfo struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UUID         string    `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	PhoneNumber  string    `gorm:"column:phone_number;not null"`
	Country      string    `gorm:"column:country;not null"`
	RegionID     int64     `gorm:"column:region_id;not null"`
	Region       *Region   `gorm:"foreignKey:RegionID"`
	City         string    `gorm:"column:city;not null"`
	Street       string    `gorm:"column:street;not null"`
	StreetNumber string    `gorm:"column:street_number;not null"`
	ZipCode      string    `gorm:"column:zip_code;not null"`
	CustomerID   int64     `gorm:"column:customer_id;not null;uniqueIndex"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *CustomerInfo) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}
