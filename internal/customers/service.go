package customers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

var listSortColumns = []string{"id", "firstname", "lastname", "created_at"}

// Service exposes customer profile and contact record operations.
type Service interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	GetByUUID(ctx context.Context, customerUUID string) (*CustomerDTO, error)
	GetByUserUUID(ctx context.Context, userUUID string) (*CustomerDTO, error)
	ListCustomers(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[CustomerDTO], error)
	UpdateCustomer(ctx context.Context, customerUUID string, input UpdateCustomerInput) (*CustomerDTO, error)
	DeleteCustomer(ctx context.Context, customerUUID string) error

	CreateInfo(ctx context.Context, customerUUID string, input InfoInput) (*InfoDTO, error)
	GetInfo(ctx context.Context, customerUUID string) (*InfoDTO, error)
	UpdateInfo(ctx context.Context, customerUUID string, input InfoInput) (*InfoDTO, error)
	DeleteInfo(ctx context.Context, customerUUID string) error

	CreatePaymentInfo(ctx context.Context, customerUUID string, input PaymentInfoInput) (*PaymentInfoDTO, error)
	GetPaymentInfo(ctx context.Context, customerUUID string) (*PaymentInfoDTO, error)
	UpdatePaymentInfo(ctx context.Context, customerUUID string, input PaymentInfoInput) (*PaymentInfoDTO, error)
	DeletePaymentInfo(ctx context.Context, customerUUID string) error
}

// CreateCustomerInput holds the payload to attach a customer profile to a user.
type CreateCustomerInput struct {
	UserUUID  string
	Firstname string
	Lastname  string
}

// UpdateCustomerInput holds optional mutation values for a profile.
type UpdateCustomerInput struct {
	Firstname *string
	Lastname  *string
}

// InfoInput holds the shipping address payload. The region arrives as a
// natural key and is resolved to its row before persisting.
type InfoInput struct {
	PhoneNumber  string
	Country      string
	Region       string
	City         string
	Street       string
	StreetNumber string
	ZipCode      string
}

// PaymentInfoInput holds the card details payload.
type PaymentInfoInput struct {
	Card           string
	CardName       string
	ExpiredDate    string
	CardValidation string
}

type userReader interface {
	FindByUUID(ctx context.Context, userUUID string) (*models.User, error)
}

type regionResolver interface {
	ResolveRegion(ctx context.Context, name string) (*models.Region, error)
}

type service struct {
	repo    *Repository
	users   userReader
	regions regionResolver
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, users userReader, regions regionResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if regions == nil {
		return nil, fmt.Errorf("region resolver required")
	}
	return &service{repo: repo, users: users, regions: regions}, nil
}

// CreateCustomer attaches a customer profile to an existing user. Each user
// carries at most one profile, checked here rather than by the schema.
func (s *service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	user, err := s.users.FindByUUID(ctx, input.UserUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", input.UserUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if _, err := s.repo.FindByUserID(ctx, user.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer profile already present for user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check customer profile")
	}

	customer := &models.Customer{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		UserID:    user.ID,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer")
	}
	created.User = user
	return FromModel(created), nil
}

// GetByUUID loads a customer with its contact records.
func (s *service) GetByUUID(ctx context.Context, customerUUID string) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}
	return FromModel(customer), nil
}

// GetByUserUUID loads the customer profile owned by the given user.
func (s *service) GetByUserUUID(ctx context.Context, userUUID string) (*CustomerDTO, error) {
	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("User", "uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	customer, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Customer", "user uuid", userUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
	}
	return FromModel(customer), nil
}

// ListCustomers returns a page of profiles matching the filter.
func (s *service) ListCustomers(ctx context.Context, filter ListFilter, req pagination.Request) (*pagination.Page[CustomerDTO], error) {
	req = req.Normalize(listSortColumns...)

	rows, total, err := s.repo.List(ctx, filter, req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}

	dtos := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	page := pagination.NewPage(dtos, req, total)
	return &page, nil
}

// UpdateCustomer applies the provided mutations to an existing profile.
func (s *service) UpdateCustomer(ctx context.Context, customerUUID string, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	if input.Firstname != nil {
		customer.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		customer.Lastname = *input.Lastname
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update customer")
	}
	return FromModel(customer), nil
}

// DeleteCustomer removes a profile and its dependent contact records.
func (s *service) DeleteCustomer(ctx context.Context, customerUUID string) error {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, customer.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete customer")
	}
	return nil
}

// CreateInfo attaches a shipping address to the customer. Each customer
// carries at most one address.
func (s *service) CreateInfo(ctx context.Context, customerUUID string, input InfoInput) (*InfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindInfoByCustomerID(ctx, customer.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer info already present")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check customer info")
	}

	region, err := s.regions.ResolveRegion(ctx, input.Region)
	if err != nil {
		return nil, err
	}

	info := &models.CustomerInfo{
		PhoneNumber:  input.PhoneNumber,
		Country:      input.Country,
		RegionID:     region.ID,
		City:         input.City,
		Street:       input.Street,
		StreetNumber: input.StreetNumber,
		ZipCode:      input.ZipCode,
		CustomerID:   customer.ID,
	}
	created, err := s.repo.CreateInfo(ctx, info)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer info")
	}
	created.Region = region
	return InfoFromModel(created), nil
}

// GetInfo loads the shipping address attached to a customer.
func (s *service) GetInfo(ctx context.Context, customerUUID string) (*InfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	info, err := s.repo.FindInfoByCustomerID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("CustomerInfo", "customer uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer info")
	}
	return InfoFromModel(info), nil
}

// UpdateInfo replaces the shipping address fields.
func (s *service) UpdateInfo(ctx context.Context, customerUUID string, input InfoInput) (*InfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	info, err := s.repo.FindInfoByCustomerID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("CustomerInfo", "customer uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer info")
	}

	region, err := s.regions.ResolveRegion(ctx, input.Region)
	if err != nil {
		return nil, err
	}

	info.PhoneNumber = input.PhoneNumber
	info.Country = input.Country
	info.RegionID = region.ID
	info.City = input.City
	info.Street = input.Street
	info.StreetNumber = input.StreetNumber
	info.ZipCode = input.ZipCode
	if err := s.repo.UpdateInfo(ctx, info); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update customer info")
	}
	info.Region = region
	return InfoFromModel(info), nil
}

// DeleteInfo removes the shipping address attached to a customer.
func (s *service) DeleteInfo(ctx context.Context, customerUUID string) error {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindInfoByCustomerID(ctx, customer.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFoundf("CustomerInfo", "customer uuid", customerUUID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer info")
	}
	if err := s.repo.DeleteInfo(ctx, customer.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete customer info")
	}
	return nil
}

// CreatePaymentInfo attaches card details to the customer. Each customer
// carries at most one card.
func (s *service) CreatePaymentInfo(ctx context.Context, customerUUID string, input PaymentInfoInput) (*PaymentInfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindPaymentInfoByCustomerID(ctx, customer.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment info already present")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check payment info")
	}

	payment := &models.PaymentInfo{
		Card:           input.Card,
		CardName:       input.CardName,
		ExpiredDate:    input.ExpiredDate,
		CardValidation: input.CardValidation,
		CustomerID:     customer.ID,
	}
	created, err := s.repo.CreatePaymentInfo(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert payment info")
	}
	return PaymentInfoFromModel(created), nil
}

// GetPaymentInfo loads the card details attached to a customer.
func (s *service) GetPaymentInfo(ctx context.Context, customerUUID string) (*PaymentInfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.FindPaymentInfoByCustomerID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("PaymentInfo", "customer uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load payment info")
	}
	return PaymentInfoFromModel(payment), nil
}

// UpdatePaymentInfo replaces the stored card details.
func (s *service) UpdatePaymentInfo(ctx context.Context, customerUUID string, input PaymentInfoInput) (*PaymentInfoDTO, error) {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.FindPaymentInfoByCustomerID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("PaymentInfo", "customer uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load payment info")
	}

	payment.Card = input.Card
	payment.CardName = input.CardName
	payment.ExpiredDate = input.ExpiredDate
	payment.CardValidation = input.CardValidation
	if err := s.repo.UpdatePaymentInfo(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update payment info")
	}
	return PaymentInfoFromModel(payment), nil
}

// DeletePaymentInfo removes the card details attached to a customer.
func (s *service) DeletePaymentInfo(ctx context.Context, customerUUID string) error {
	customer, err := s.loadCustomer(ctx, customerUUID)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindPaymentInfoByCustomerID(ctx, customer.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFoundf("PaymentInfo", "customer uuid", customerUUID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load payment info")
	}
	if err := s.repo.DeletePaymentInfo(ctx, customer.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete payment info")
	}
	return nil
}

func (s *service) loadCustomer(ctx context.Context, customerUUID string) (*models.Customer, error) {
	customer, err := s.repo.FindByUUID(ctx, customerUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundf("Customer", "uuid", customerUUID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
	}
	return customer, nil
}
