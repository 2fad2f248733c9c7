package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/internal/customers"
	"github.com/marioskal/eshop-backend/internal/products"
	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/enums"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
)

// Service exposes order placement and lookup operations.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, id int64) (*OrderDTO, error)
	GetByUUID(ctx context.Context, orderUUID string) (*OrderDTO, error)
	ListByCustomerUUID(ctx context.Context, customerUUID string) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, orderUUID string, status string) (*OrderDTO, error)
}

// PlaceOrderInput holds the requested order. Item prices are never accepted
// from the caller; the product's current price is snapshotted instead.
type PlaceOrderInput struct {
	CustomerUUID string
	Status       string
	Items        []ItemInput
}

// ItemInput is one requested line, identified by the product's natural key.
type ItemInput struct {
	SKU      string
	Quantity int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// PlaceOrder runs the placement workflow in a single transaction. The order
// header, every line item, and every stock decrement commit together or not
// at all.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must have at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for SKU %s must be positive", item.SKU))
		}
	}

	status := enums.OrderStatusConfirmed
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := enums.ParseOrderStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		status = parsed
	}

	var orderID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		customerRepo := customers.NewRepository(tx)
		productRepo := products.NewRepository(tx)

		customer, err := customerRepo.FindByUUID(ctx, input.CustomerUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFoundf("Customer", "uuid", input.CustomerUUID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		total := decimal.Zero
		for _, requested := range input.Items {
			product, err := productRepo.FindBySKU(ctx, requested.SKU)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.NotFoundf("Product", "SKU", requested.SKU)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(requested.Quantity))).Round(0)
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				SKU:          product.SKU,
				Name:         product.Name,
				BrandID:      int64Ptr(product.BrandID),
				CategoryID:   int64Ptr(product.CategoryID),
				AttachmentID: product.AttachmentID,
				UnitPrice:    product.Price,
				Quantity:     requested.Quantity,
				TotalPrice:   lineTotal,
			})
		}

		order := &models.Order{
			CustomerID:     customer.ID,
			Status:         status,
			TotalPrice:     total,
			TrackingNumber: newTrackingNumber(),
			Items:          items,
		}
		created, err := s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		orderID = created.ID

		for _, requested := range input.Items {
			product, err := productRepo.FindBySKUForUpdate(ctx, requested.SKU)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock product")
			}
			product.Quantity -= requested.Quantity
			product.InStock = product.Quantity > 0
			if product.Quantity < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("insufficient stock for SKU %s", requested.SKU))
			}
			if err := productRepo.UpdateStock(ctx, product.ID, product.Quantity, product.InStock); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	return s.GetByID(ctx, orderID)
}

// GetByID loads a fully hydrated order by surrogate ID.
func (s *service) GetByID(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Order", "id", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return FromModel(order), nil
}

// GetByUUID loads a fully hydrated order by public identifier.
func (s *service) GetByUUID(ctx context.Context, orderUUID string) (*OrderDTO, error) {
	order, err := s.repo.FindByUUID(ctx, orderUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Order", "uuid", orderUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return FromModel(order), nil
}

// ListByCustomerUUID returns the customer's orders newest-first.
func (s *service) ListByCustomerUUID(ctx context.Context, customerUUID string) ([]OrderDTO, error) {
	customerRepo := customers.NewRepository(s.dbClient.DB())

	customer, err := customerRepo.FindByUUID(ctx, customerUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Customer", "uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
	}

	rows, err := s.repo.ListByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// UpdateStatus moves the order to a new lifecycle stage.
func (s *service) UpdateStatus(ctx context.Context, orderUUID string, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	order, err := s.repo.FindByUUID(ctx, orderUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Order", "uuid", orderUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	return s.GetByID(ctx, order.ID)
}

// newTrackingNumber returns "TR-" plus ten uppercase hex characters.
func newTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TR-" + strings.ToUpper(raw[:10])
}

func int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
