package customers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

// Repository exposes customer-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
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

// ListFilter narrows the customer listing. Nil fields are ignored.
type ListFilter struct {
	Firstname *string
	Lastname  *string
	Username  *string
}

// Create inserts a new customer profile.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// FindByUUID loads a customer with its contact records by public identifier.
func (r *Repository) FindByUUID(ctx context.Context, customerUUID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Info").
		Preload("Info.Region").
		Preload("PaymentInfo").
		Where("uuid = ?", customerUUID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByUserID loads the customer profile owned by the given user row.
func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Info").
		Preload("Info.Region").
		Preload("PaymentInfo").
		Where("user_id = ?", userID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns the customers matching the filter plus the total match count.
// The username filter joins to the owning user and matches by equality.
func (r *Repository) List(ctx context.Context, filter ListFilter, req pagination.Request) ([]models.Customer, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Customer{})

	if filter.Firstname != nil && *filter.Firstname != "" {
		qb = qb.Where("UPPER(customers.firstname) LIKE ?", "%"+strings.ToUpper(*filter.Firstname)+"%")
	}
	if filter.Lastname != nil && *filter.Lastname != "" {
		qb = qb.Where("UPPER(customers.lastname) LIKE ?", "%"+strings.ToUpper(*filter.Lastname)+"%")
	}
	if filter.Username != nil && *filter.Username != "" {
		qb = qb.Joins("JOIN users ON users.id = customers.user_id").
			Where("users.username = ?", *filter.Username)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Customer
	if err := qb.
		Preload("User").
		Order("customers." + req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update persists the mutable columns of the customer profile.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"firstname": customer.Firstname,
			"lastname":  customer.Lastname,
		}).Error
}

// Delete removes the customer row. Contact records cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, customerID).Error
}

// CreateInfo inserts a shipping address for a customer.
func (r *Repository) CreateInfo(ctx context.Context, info *models.CustomerInfo) (*models.CustomerInfo, error) {
	if err := r.db.WithContext(ctx).Create(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

// FindInfoByCustomerID loads the shipping address attached to a customer.
func (r *Repository) FindInfoByCustomerID(ctx context.Context, customerID int64) (*models.CustomerInfo, error) {
	var info models.CustomerInfo
	if err := r.db.WithContext(ctx).
		Preload("Region").
		Where("customer_id = ?", customerID).
		First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateInfo persists the mutable columns of a shipping address.
func (r *Repository) UpdateInfo(ctx context.Context, info *models.CustomerInfo) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomerInfo{}).
		Where("id = ?", info.ID).
		Updates(map[string]any{
			"phone_number":  info.PhoneNumber,
			"country":       info.Country,
			"region_id":     info.RegionID,
			"city":          info.City,
			"street":        info.Street,
			"street_number": info.StreetNumber,
			"zip_code":      info.ZipCode,
		}).Error
}

// DeleteInfo removes the shipping address attached to a customer.
func (r *Repository) DeleteInfo(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.CustomerInfo{}).Error
}

// CreatePaymentInfo inserts card details for a customer.
func (r *Repository) CreatePaymentInfo(ctx context.Context, payment *models.PaymentInfo) (*models.PaymentInfo, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// FindPaymentInfoByCustomerID loads the card details attached to a customer.
func (r *Repository) FindPaymentInfoByCustomerID(ctx context.Context, customerID int64) (*models.PaymentInfo, error) {
	var payment models.PaymentInfo
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePaymentInfo persists the mutable columns of the card details.
func (r *Repository) UpdatePaymentInfo(ctx context.Context, payment *models.PaymentInfo) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentInfo{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"card":            payment.Card,
			"card_name":       payment.CardName,
			"expired_date":    payment.ExpiredDate,
			"card_validation": payment.CardValidation,
		}).Error
}

// DeletePaymentInfo removes the card details attached to a customer.
func (r *Repository) DeletePaymentInfo(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.PaymentInfo{}).Error
}
