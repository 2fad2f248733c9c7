package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/enums"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
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

// Create inserts the order header and its line items in one pass.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads a fully hydrated order by surrogate ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).First(&order, "orders.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUUID loads a fully hydrated order by public identifier.
func (r *Repository) FindByUUID(ctx context.Context, orderUUID string) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("orders.uuid = ?", orderUUID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomerID returns the customer's orders newest-first by ID.
func (r *Repository) ListByCustomerID(ctx context.Context, customerID int64) ([]models.Order, error) {
	var rows []models.Order
	if err := r.preloaded(ctx).
		Where("orders.customer_id = ?", customerID).
		Order("orders.id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus overwrites the lifecycle stage of the order.
func (r *Repository) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("status", status).Error
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Brand").
		Preload("Items.Category").
		Preload("Items.Attachment")
}
