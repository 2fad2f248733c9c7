package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marioskal/eshop-backend/pkg/db/models"
)

// ProductDTO is the transport projection of a catalog listing.
type ProductDTO struct {
	ID          int64           `json:"id"`
	UUID        string          `json:"uuid"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `json:"is_active"`
	InStock     bool            `json:"in_stock"`
	Photo       *PhotoDTO       `json:"photo,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PhotoDTO describes the stored product photo.
type PhotoDTO struct {
	UUID        string `json:"uuid"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Extension   string `json:"extension"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:          p.ID,
		UUID:        p.UUID,
		Name:        p.Name,
		SKU:         p.SKU,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		IsActive:    p.IsActive,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Brand != nil {
		dto.Brand = p.Brand.Name
	}
	if p.Category != nil {
		dto.Category = p.Category.Name
	}
	if p.Attachment != nil {
		dto.Photo = &PhotoDTO{
			UUID:        p.Attachment.UUID,
			Filename:    p.Attachment.Filename,
			ContentType: p.Attachment.ContentType,
			Extension:   p.Attachment.Extension,
		}
	}
	return dto
}
