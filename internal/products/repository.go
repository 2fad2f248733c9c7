package products

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListFilter narrows the product listing. Nil fields are ignored, so an
// all-nil filter matches every row.
type ListFilter struct {
	Name     *string
	Brand    *string
	Category *string
	IsActive *bool
	InStock  *bool
}

func (r *Repository) applyFilter(qb *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Name != nil && *filter.Name != "" {
		qb = qb.Where("UPPER(products.name) LIKE ?", "%"+strings.ToUpper(*filter.Name)+"%")
	}
	if filter.Brand != nil && *filter.Brand != "" {
		qb = qb.Joins("JOIN brands ON brands.id = products.brand_id").
			Where("brands.name = ?", *filter.Brand)
	}
	if filter.Category != nil && *filter.Category != "" {
		qb = qb.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", *filter.Category)
	}
	if filter.IsActive != nil {
		qb = qb.Where("products.is_active = ?", *filter.IsActive)
	}
	if filter.InStock != nil {
		qb = qb.Where("products.in_stock = ?", *filter.InStock)
	}
	return qb
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product with its related rows by surrogate ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).First(&product, "products.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByUUID loads a product with its related rows by public identifier.
func (r *Repository) FindByUUID(ctx context.Context, productUUID string) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).Where("products.uuid = ?", productUUID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads a product with its related rows by natural key.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).Where("products.sku = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKUForUpdate loads the product row for a stock mutation. On Postgres
// the row is locked with FOR UPDATE so concurrent decrements serialize; the
// sqlite driver used in tests takes no row locks.
func (r *Repository) FindBySKUForUpdate(ctx context.Context, sku string) (*models.Product, error) {
	qb := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		qb = qb.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	if err := qb.Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products matching the filter plus the total count.
func (r *Repository) List(ctx context.Context, filter ListFilter, req pagination.Request) ([]models.Product, int64, error) {
	qb := r.applyFilter(r.db.WithContext(ctx).Model(&models.Product{}), filter)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	if err := qb.
		Preload("Brand").
		Preload("Category").
		Preload("Attachment").
		Order("products." + req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every product matching the filter without pagination.
func (r *Repository) ListAll(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	qb := r.applyFilter(r.db.WithContext(ctx).Model(&models.Product{}), filter)

	var rows []models.Product
	if err := qb.
		Preload("Brand").
		Preload("Category").
		Preload("Attachment").
		Order("products.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the mutable columns of the product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"sku":         product.SKU,
			"price":       product.Price,
			"quantity":    product.Quantity,
			"description": product.Description,
			"brand_id":    product.BrandID,
			"category_id": product.CategoryID,
			"is_active":   product.IsActive,
			"in_stock":    product.InStock,
		}).Error
}

// UpdateStock overwrites the quantity and derived in-stock flag.
func (r *Repository) UpdateStock(ctx context.Context, productID int64, quantity int, inStock bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"quantity": quantity,
			"in_stock": inStock,
		}).Error
}

// SetAttachment points the product at the stored photo row.
func (r *Repository) SetAttachment(ctx context.Context, productID int64, attachmentID *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("attachment_id", attachmentID).Error
}

// CreateAttachment inserts a stored photo row.
func (r *Repository) CreateAttachment(ctx context.Context, photo *models.AttachmentPhoto) (*models.AttachmentPhoto, error) {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// DeleteAttachment removes a stored photo row.
func (r *Repository) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return r.db.WithContext(ctx).Delete(&models.AttachmentPhoto{}, attachmentID).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, productID).Error
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Attachment")
}
