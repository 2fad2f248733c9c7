package users

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
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

// ListFilter narrows the user listing. Nil fields are ignored.
type ListFilter struct {
	Username *string
	Role     *string
	IsActive *bool
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUUID loads a user by its public identifier.
func (r *Repository) FindByUUID(ctx context.Context, userUUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", userUUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves the user matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns the users matching the filter along with the total match count.
func (r *Repository) List(ctx context.Context, filter ListFilter, req pagination.Request) ([]models.User, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Username != nil && *filter.Username != "" {
		qb = qb.Where("UPPER(users.username) LIKE ?", "%"+strings.ToUpper(*filter.Username)+"%")
	}
	if filter.Role != nil && *filter.Role != "" {
		qb = qb.Where("users.role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		qb = qb.Where("users.is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.User
	if err := qb.
		Order(req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update persists the mutable columns of the given user row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":  user.Username,
			"role":      user.Role,
			"is_active": user.IsActive,
		}).Error
}

// UpdatePasswordHash overwrites the stored credential for the user.
func (r *Repository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("password_hash", hash).Error
}

// Delete removes the user row. Dependent profiles cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, userID).Error
}
