package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/config"
	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/enums"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
	"github.com/marioskal/eshop-backend/pkg/security"
)

var listSortColumns = []string{"id", "username", "role", "created_at"}

// Service exposes user account management operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	GetByUUID(ctx context.Context, userUUID string) (*UserDTO, error)
	ListUsers(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[UserDTO], error)
	UpdateUser(ctx context.Context, userUUID string, input UpdateUserInput) (*UserDTO, error)
	DeleteUser(ctx context.Context, userUUID string) error
}

// CreateUserInput holds the validated payload to create an account.
type CreateUserInput struct {
	Username string
	Password string
	Role     enums.Role
	IsActive *bool
}

// UpdateUserInput holds optional mutation values for an account.
type UpdateUserInput struct {
	Role     *enums.Role
	IsActive *bool
	Password *string
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a user service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// CreateUser registers a new account with a hashed credential.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role: %s", input.Role))
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := CreateUserDTO{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     input.IsActive,
	}.ToModel()

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "users_username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("username %s already taken", input.Username))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return FromModel(created), nil
}

// GetByUUID loads a single account by its public identifier.
func (s *service) GetByUUID(ctx context.Context, userUUID string) (*UserDTO, error) {
	user, err := s.repo.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return FromModel(user), nil
}

// ListUsers returns a page of accounts matching the filter.
func (s *service) ListUsers(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[UserDTO], error) {
	req = req.Normalize(listSortColumns...)

	rows, total, err := s.repo.List(ctx, filter, req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}

	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	page := pagination.NewPage(dtos, req, total)
	return &page, nil
}

// UpdateUser applies the provided mutations to an existing account.
func (s *service) UpdateUser(ctx context.Context, userUUID string, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.repo.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role: %s", *input.Role))
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update credential")
		}
	}

	return FromModel(user), nil
}

// DeleteUser removes an account and its dependent profiles.
func (s *service) DeleteUser(ctx context.Context, userUUID string) error {
	user, err := s.repo.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFoundf("User", "uuid", userUUID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	return nil
}
