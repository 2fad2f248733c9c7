package admins

import (
	"context"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
)

// Repository exposes admin profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admins repo bound to the provided GORM DB.
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

// Create inserts a new admin profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// FindByUUID loads an admin profile by its public identifier.
func (r *Repository) FindByUUID(ctx context.Context, adminUUID string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where("uuid = ?", adminUUID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByUserID loads the admin profile owned by the given user row.
func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Update persists the mutable columns of the profile.
func (r *Repository) Update(ctx context.Context, admin *models.AdminUser) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", admin.ID).
		Updates(map[string]any{
			"firstname": admin.Firstname,
			"lastname":  admin.Lastname,
		}).Error
}

// Delete removes the admin profile row.
func (r *Repository) Delete(ctx context.Context, adminID int64) error {
	return r.db.WithContext(ctx).Delete(&models.AdminUser{}, adminID).Error
}
