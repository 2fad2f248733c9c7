package products

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/internal/catalog"
	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
	"github.com/marioskal/eshop-backend/pkg/storage/local"
)

var listSortColumns = []string{"id", "name", "sku", "price", "created_at"}

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	GetByUUID(ctx context.Context, productUUID string) (*ProductDTO, error)
	GetBySKU(ctx context.Context, sku string) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[ProductDTO], error)
	ListAllProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, productUUID string, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productUUID string) error
	AttachPhoto(ctx context.Context, productUUID string, upload PhotoUpload) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a listing. Brand
// and category arrive as natural keys.
type CreateProductInput struct {
	Name        string
	SKU         string
	Price       decimal.Decimal
	Quantity    int
	Description string
	Brand       string
	Category    string
	IsActive    *bool
}

// UpdateProductInput holds optional mutation values for a listing.
type UpdateProductInput struct {
	Name        *string
	SKU         *string
	Price       *decimal.Decimal
	Quantity    *int
	Description *string
	Brand       *string
	Category    *string
	IsActive    *bool
}

// PhotoUpload carries an incoming product image stream.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type photoStore interface {
	Save(ctx context.Context, filename, contentType string, content io.Reader) (*local.Descriptor, error)
	Remove(ctx context.Context, savedName string) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	catalog  *catalog.Service
	photos   photoStore
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, catalogSvc *catalog.Service, photos photoStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{repo: repo, dbClient: dbClient, catalog: catalogSvc, photos: photos}, nil
}

// CreateProduct inserts a listing after resolving its brand and category.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		resolver := s.catalog.WithTx(tx)

		brand, err := resolver.ResolveBrand(ctx, input.Brand)
		if err != nil {
			return err
		}
		category, err := resolver.ResolveCategory(ctx, input.Category)
		if err != nil {
			return err
		}

		product := &models.Product{
			Name:        input.Name,
			SKU:         input.SKU,
			Price:       input.Price,
			Quantity:    input.Quantity,
			Description: input.Description,
			BrandID:     brand.ID,
			CategoryID:  category.ID,
			IsActive:    isActive,
			InStock:     input.Quantity > 0,
		}
		created, err := s.repo.WithTx(tx).Create(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product with SKU %s already exists", input.SKU))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetByID(ctx, createdID)
}

// GetByID loads a listing by surrogate ID.
func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Product", "id", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return FromModel(product), nil
}

// GetByUUID loads a listing by public identifier.
func (s *service) GetByUUID(ctx context.Context, productUUID string) (*ProductDTO, error) {
	product, err := s.loadByUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

// GetBySKU loads a listing by natural key.
func (s *service) GetBySKU(ctx context.Context, sku string) (*ProductDTO, error) {
	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Product", "SKU", sku)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return FromModel(product), nil
}

// ListProducts returns a page of listings matching the filter.
func (s *service) ListProducts(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[ProductDTO], error) {
	req = req.Normalize(listSortColumns...)

	rows, total, err := s.repo.List(ctx, filter, req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	page := pagination.NewPage(dtos, req, total)
	return &page, nil
}

// ListAllProducts returns every listing matching the filter.
func (s *service) ListAllProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	rows, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// UpdateProduct applies the provided mutations to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, productUUID string, input UpdateProductInput) (*ProductDTO, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	var updatedID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		resolver := s.catalog.WithTx(tx)

		product, err := txRepo.FindByUUID(ctx, productUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFoundf("Product", "uuid", productUUID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.SKU != nil {
			product.SKU = *input.SKU
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Quantity != nil {
			product.Quantity = *input.Quantity
			product.InStock = *input.Quantity > 0
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Brand != nil {
			brand, err := resolver.ResolveBrand(ctx, *input.Brand)
			if err != nil {
				return err
			}
			product.BrandID = brand.ID
		}
		if input.Category != nil {
			category, err := resolver.ResolveCategory(ctx, *input.Category)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
		}

		if err := txRepo.Update(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product with SKU %s already exists", product.SKU))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		updatedID = product.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.GetByID(ctx, updatedID)
}

// DeleteProduct removes a listing along with its stored photo.
func (s *service) DeleteProduct(ctx context.Context, productUUID string) error {
	product, err := s.loadByUUID(ctx, productUUID)
	if err != nil {
		return err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Delete(ctx, product.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		if product.AttachmentID != nil {
			if err := txRepo.DeleteAttachment(ctx, *product.AttachmentID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete attachment")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	if product.Attachment != nil && s.photos != nil {
		_ = s.photos.Remove(ctx, product.Attachment.SavedName)
	}
	return nil
}

// AttachPhoto stores the uploaded image and points the listing at it,
// replacing any previous photo.
func (s *service) AttachPhoto(ctx context.Context, productUUID string, upload PhotoUpload) (*ProductDTO, error) {
	if s.photos == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "photo storage not configured")
	}

	product, err := s.loadByUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}

	desc, err := s.photos.Save(ctx, upload.Filename, upload.ContentType, upload.Content)
	if err != nil {
		if errors.Is(err, local.ErrFileTooLarge) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds maximum upload size")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: save photo")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		photo := &models.AttachmentPhoto{
			Filename:    desc.Filename,
			SavedName:   desc.SavedName,
			FilePath:    desc.FilePath,
			ContentType: desc.ContentType,
			Extension:   desc.Extension,
		}
		created, err := txRepo.CreateAttachment(ctx, photo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert attachment")
		}
		if err := txRepo.SetAttachment(ctx, product.ID, &created.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach photo")
		}
		if product.AttachmentID != nil {
			if err := txRepo.DeleteAttachment(ctx, *product.AttachmentID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete previous attachment")
			}
		}
		return nil
	}); err != nil {
		_ = s.photos.Remove(ctx, desc.SavedName)
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach photo")
	}

	if product.Attachment != nil {
		_ = s.photos.Remove(ctx, product.Attachment.SavedName)
	}
	return s.GetByID(ctx, product.ID)
}

func (s *service) loadByUUID(ctx context.Context, productUUID string) (*models.Product, error) {
	product, err := s.repo.FindByUUID(ctx, productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Product", "uuid", productUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}
