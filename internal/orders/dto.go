package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/enums"
)

// OrderDTO is the transport projection of a persisted order.
type OrderDTO struct {
	ID             int64             `json:"id"`
	UUID           string            `json:"uuid"`
	CustomerUUID   string            `json:"customer_uuid,omitempty"`
	Status         enums.OrderStatus `json:"status"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	TrackingNumber string            `json:"tracking_number"`
	Items          []OrderItemDTO    `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// OrderItemDTO is the transport projection of one line item snapshot.
type OrderItemDTO struct {
	UUID       string          `json:"uuid"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand,omitempty"`
	Category   string          `json:"category,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:             o.ID,
		UUID:           o.UUID,
		Status:         o.Status,
		TotalPrice:     o.TotalPrice,
		TrackingNumber: o.TrackingNumber,
		Items:          make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Customer != nil {
		dto.CustomerUUID = o.Customer.UUID
	}
	for i := range o.Items {
		dto.Items = append(dto.Items, itemFromModel(&o.Items[i]))
	}
	return dto
}

func itemFromModel(item *models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		UUID:       item.UUID,
		SKU:        item.SKU,
		Name:       item.Name,
		UnitPrice:  item.UnitPrice,
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice,
	}
	if item.Brand != nil {
		dto.Brand = item.Brand.Name
	}
	if item.Category != nil {
		dto.Category = item.Category.Name
	}
	return dto
}
