package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog listing identified by its SKU.
type Product struct {
	ID           int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UUID         string           `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	Name         string           `gorm:"column:name;not null"`
	SKU          string           `gorm:"column:sku;type:text;not null;uniqueIndex"`
	Price        decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity     int              `gorm:"column:quantity;not null;default:0"`
	Description  string           `gorm:"column:description"`
	BrandID      int64            `gorm:"column:brand_id;not null"`
	Brand        *Brand           `gorm:"foreignKey:BrandID"`
	CategoryID   int64            `gorm:"column:category_id;not null"`
	Category     *Category        `gorm:"foreignKey:CategoryID"`
	IsActive     bool             `gorm:"column:is_active;not null"`
	InStock      bool             `gorm:"column:in_stock;not null;default:false"`
	AttachmentID *int64           `gorm:"column:attachment_id"`
	Attachment   *AttachmentPhoto `gorm:"foreignKey:AttachmentID"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
