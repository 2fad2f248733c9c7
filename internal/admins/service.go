package admins

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
)

// Service exposes admin profile management operations.
type Service interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*AdminDTO, error)
	GetByUserUUID(ctx context.Context, userUUID string) (*AdminDTO, error)
	UpdateProfile(ctx context.Context, adminUUID string, input UpdateProfileInput) (*AdminDTO, error)
}

// CreateProfileInput holds the payload to attach an admin profile to a user.
type CreateProfileInput struct {
	UserUUID  string
	Firstname string
	Lastname  string
}

// UpdateProfileInput holds optional mutation values for a profile.
type UpdateProfileInput struct {
	Firstname *string
	Lastname  *string
}

type userReader interface {
	FindByUUID(ctx context.Context, userUUID string) (*models.User, error)
}

type service struct {
	repo  *Repository
	users userReader
}

// NewService constructs an admin profile service.
func NewService(repo *Repository, users userReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admins repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, users: users}, nil
}

// CreateProfile attaches an admin profile to an existing user. Each user
// carries at most one profile, checked here rather than by the schema.
func (s *service) CreateProfile(ctx context.Context, input CreateProfileInput) (*AdminDTO, error) {
	user, err := s.users.FindByUUID(ctx, input.UserUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", input.UserUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.Role.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user does not hold an admin role")
	}

	if _, err := s.repo.FindByUserID(ctx, user.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin profile already present for user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check admin profile")
	}

	admin := &models.AdminUser{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		UserID:    user.ID,
	}
	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert admin profile")
	}
	created.User = user
	return FromModel(created), nil
}

// GetByUserUUID loads the admin profile owned by the given user.
func (s *service) GetByUserUUID(ctx context.Context, userUUID string) (*AdminDTO, error) {
	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	admin, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("AdminUser", "user uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load admin profile")
	}
	admin.User = user
	return FromModel(admin), nil
}

// UpdateProfile applies the provided mutations to an existing profile.
func (s *service) UpdateProfile(ctx context.Context, adminUUID string, input UpdateProfileInput) (*AdminDTO, error) {
	admin, err := s.repo.FindByUUID(ctx, adminUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("AdminUser", "uuid", adminUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load admin profile")
	}

	if input.Firstname != nil {
		admin.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		admin.Lastname = *input.Lastname
	}
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update admin profile")
	}
	return FromModel(admin), nil
}
