package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/internal/catalog"
	"github.com/marioskal/eshop-backend/internal/users"
	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/enums"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

func setupCustomersTest(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerInfo{},
		&models.PaymentInfo{},
		&models.Region{},
	))

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), users.NewRepository(conn), catalogSvc.WithTx(nil))
	require.NoError(t, err)
	return conn, svc
}

func mustCreateUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func mustCreateCustomer(t *testing.T, svc Service, userUUID, first, last string) *CustomerDTO {
	t.Helper()

	created, err := svc.CreateCustomer(context.Background(), CreateCustomerInput{
		UserUUID:  userUUID,
		Firstname: first,
		Lastname:  last,
	})
	require.NoError(t, err)
	return created
}

func TestCreateCustomerAndLookups(t *testing.T) {
	conn, svc := setupCustomersTest(t)
	ctx := context.Background()

	user := mustCreateUser(t, conn, "alice@example.com")
	created := mustCreateCustomer(t, svc, user.UUID, "Alice", "Karas")

	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "alice@example.com", created.Username)

	byUUID, err := svc.GetByUUID(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byUUID.Firstname)

	byUser, err := svc.GetByUserUUID(ctx, user.UUID)
	require.NoError(t, err)
	assert.Equal(t, created.UUID, byUser.UUID)

	_, err = svc.GetByUUID(ctx, "missing-uuid")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCreateCustomerSecondProfileConflicts(t *testing.T) {
	conn, svc := setupCustomersTest(t)

	user := mustCreateUser(t, conn, "bob@example.com")
	mustCreateCustomer(t, svc, user.UUID, "Bob", "Laz")

	_, err := svc.CreateCustomer(context.Background(), CreateCustomerInput{
		UserUUID:  user.UUID,
		Firstname: "Bob",
		Lastname:  "Laz",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestListCustomersFiltered(t *testing.T) {
	conn, svc := setupCustomersTest(t)
	ctx := context.Background()

	u1 := mustCreateUser(t, conn, "carol@example.com")
	u2 := mustCreateUser(t, conn, "dan@example.com")
	mustCreateCustomer(t, svc, u1.UUID, "Carol", "Mavros")
	mustCreateCustomer(t, svc, u2.UUID, "Dan", "Mavridis")

	contains := "mavr"
	page, err := svc.ListCustomers(ctx, ListFilter{Lastname: &contains}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	username := "dan@example.com"
	page, err = svc.ListCustomers(ctx, ListFilter{Username: &username}, pagination.Request{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Dan", page.Content[0].Firstname)

	page, err = svc.ListCustomers(ctx, ListFilter{}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	conn, svc := setupCustomersTest(t)
	ctx := context.Background()

	user := mustCreateUser(t, conn, "eve@example.com")
	created := mustCreateCustomer(t, svc, user.UUID, "Eve", "Nikolaou")

	last := "Georgiou"
	updated, err := svc.UpdateCustomer(ctx, created.UUID, UpdateCustomerInput{Lastname: &last})
	require.NoError(t, err)
	assert.Equal(t, "Georgiou", updated.Lastname)

	require.NoError(t, svc.DeleteCustomer(ctx, created.UUID))

	_, err = svc.GetByUUID(ctx, created.UUID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCustomerInfoLifecycle(t *testing.T) {
	conn, svc := setupCustomersTest(t)
	ctx := context.Background()

	require.NoError(t, conn.Create(&models.Region{Name: "Attica"}).Error)
	user := mustCreateUser(t, conn, "fay@example.com")
	customer := mustCreateCustomer(t, svc, user.UUID, "Fay", "Ioannou")

	input := InfoInput{
		PhoneNumber:  "+302101234567",
		Country:      "Greece",
		Region:       "Attica",
		City:         "Athens",
		Street:       "Ermou",
		StreetNumber: "12",
		ZipCode:      "10563",
	}

	created, err := svc.CreateInfo(ctx, customer.UUID, input)
	require.NoError(t, err)
	assert.Equal(t, "Attica", created.Region)
	assert.Equal(t, "Athens", created.City)

	_, err = svc.CreateInfo(ctx, customer.UUID, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	input.City = "Piraeus"
	updated, err := svc.UpdateInfo(ctx, customer.UUID, input)
	require.NoError(t, err)
	assert.Equal(t, "Piraeus", updated.City)

	got, err := svc.GetInfo(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Piraeus", got.City)

	require.NoError(t, svc.DeleteInfo(ctx, customer.UUID))

	_, err = svc.GetInfo(ctx, customer.UUID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	byUUID, err := svc.GetByUUID(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Nil(t, byUUID.Info)
}

func TestCustomerInfoUnknownRegion(t *testing.T) {
	conn, svc := setupCustomersTest(t)

	user := mustCreateUser(t, conn, "gus@example.com")
	customer := mustCreateCustomer(t, svc, user.UUID, "Gus", "Pan")

	_, err := svc.CreateInfo(context.Background(), customer.UUID, InfoInput{
		PhoneNumber:  "+302100000000",
		Country:      "Greece",
		Region:       "Atlantis",
		City:         "Nowhere",
		Street:       "None",
		StreetNumber: "0",
		ZipCode:      "00000",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Region with name: Atlantis not found")
}

func TestPaymentInfoLifecycle(t *testing.T) {
	conn, svc := setupCustomersTest(t)
	ctx := context.Background()

	user := mustCreateUser(t, conn, "hera@example.com")
	customer := mustCreateCustomer(t, svc, user.UUID, "Hera", "Stavrou")

	input := PaymentInfoInput{
		Card:           "4111111111111111",
		CardName:       "HERA STAVROU",
		ExpiredDate:    "12/28",
		CardValidation: "123",
	}

	created, err := svc.CreatePaymentInfo(ctx, customer.UUID, input)
	require.NoError(t, err)
	assert.Equal(t, "HERA STAVROU", created.CardName)

	_, err = svc.CreatePaymentInfo(ctx, customer.UUID, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	input.ExpiredDate = "01/30"
	updated, err := svc.UpdatePaymentInfo(ctx, customer.UUID, input)
	require.NoError(t, err)
	assert.Equal(t, "01/30", updated.ExpiredDate)

	require.NoError(t, svc.DeletePaymentInfo(ctx, customer.UUID))

	_, err = svc.GetPaymentInfo(ctx, customer.UUID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
