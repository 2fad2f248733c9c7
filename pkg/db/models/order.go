package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/enums"
)

// Order is the purchase header owning its line items.
type Order struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           string            `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	CustomerID     int64             `gorm:"column:customer_id;not null"`
	Customer       *Customer         `gorm:"foreignKey:CustomerID"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null"`
	TotalPrice     decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	TrackingNumber string            `gorm:"column:tracking_number;type:text;not null;uniqueIndex"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots product data at order time so later catalog edits do
// not change historical orders.
type OrderItem struct {
	ID           int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UUID         string           `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	OrderID      int64            `gorm:"column:order_id;not null"`
	SKU          string           `gorm:"column:sku;not null"`
	Name         string           `gorm:"column:name;not null"`
	BrandID      *int64           `gorm:"column:brand_id"`
	Brand        *Brand           `gorm:"foreignKey:BrandID"`
	CategoryID   *int64           `gorm:"column:category_id"`
	Category     *Category        `gorm:"foreignKey:CategoryID"`
	AttachmentID *int64           `gorm:"column:attachment_id"`
	Attachment   *AttachmentPhoto `gorm:"foreignKey:AttachmentID"`
	UnitPrice    decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity     int              `gorm:"column:quantity;not null"`
	TotalPrice   decimal.Decimal  `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.NewString()
	}
	return nil
}
