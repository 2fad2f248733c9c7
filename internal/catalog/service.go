package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
)

// Service exposes the read surface for lookup entities and resolves the
// natural keys other features reference (brand name, category name, region
// name).
type Service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]LookupDTO, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	dtos := make([]LookupDTO, 0, len(brands))
	for _, brand := range brands {
		dtos = append(dtos, BrandToDTO(brand))
	}
	return dtos, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]LookupDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]LookupDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, CategoryToDTO(category))
	}
	return dtos, nil
}

func (s *Service) ListRegions(ctx context.Context) ([]LookupDTO, error) {
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	dtos := make([]LookupDTO, 0, len(regions))
	for _, region := range regions {
		dtos = append(dtos, RegionToDTO(region))
	}
	return dtos, nil
}

// ResolveBrand loads a brand by its name, signalling NotFound on a miss.
func (s *Service) ResolveBrand(ctx context.Context, name string) (*models.Brand, error) {
	return s.WithTx(nil).ResolveBrand(ctx, name)
}

// Resolver is the transaction-scoped natural-key resolution surface used by
// insert-mapping paths.
type Resolver struct {
	repo *Repository
}

// WithTx returns a resolver bound to the provided transaction.
func (s *Service) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{repo: s.repo.WithTx(tx)}
}

func (r *Resolver) ResolveBrand(ctx context.Context, name string) (*models.Brand, error) {
	brand, err := r.repo.FindBrandByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Brand", "name", name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

func (r *Resolver) ResolveCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := r.repo.FindCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Category", "name", name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (r *Resolver) ResolveRegion(ctx context.Context, name string) (*models.Region, error) {
	region, err := r.repo.FindRegionByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Region", "name", name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}
	return region, nil
}
