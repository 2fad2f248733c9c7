package orders

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/db/models"
	"github.com/marioskal/eshop-backend/pkg/enums"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
)

var trackingNumberPattern = regexp.MustCompile(`^TR-[0-9A-F]{10}$`)

func setupOrdersTest(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Region{},
		&models.CustomerInfo{},
		&models.PaymentInfo{},
		&models.Brand{},
		&models.Category{},
		&models.AttachmentPhoto{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn))
	require.NoError(t, err)
	return conn, svc
}

func mustSeedCustomer(t *testing.T, conn *gorm.DB, username string) *models.Customer {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)

	customer := &models.Customer{
		Firstname: "Test",
		Lastname:  "Shopper",
		UserID:    user.ID,
	}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

func mustSeedProduct(t *testing.T, conn *gorm.DB, sku, price string, quantity int) *models.Product {
	t.Helper()

	brand := &models.Brand{Name: "Brand-" + sku}
	require.NoError(t, conn.Create(brand).Error)
	category := &models.Category{Name: "Category-" + sku}
	require.NoError(t, conn.Create(category).Error)

	product := &models.Product{
		Name:       "Product " + sku,
		SKU:        sku,
		Price:      decimal.RequireFromString(price),
		Quantity:   quantity,
		BrandID:    brand.ID,
		CategoryID: category.ID,
		IsActive:   true,
		InStock:    quantity > 0,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestPlaceOrderComputesTotalsAndSnapshots(t *testing.T) {
	conn, svc := setupOrdersTest(t)
	ctx := context.Background()

	customer := mustSeedCustomer(t, conn, "alice@example.com")
	mustSeedProduct(t, conn, "SKU-A", "19.99", 10)
	mustSeedProduct(t, conn, "SKU-B", "5.00", 4)

	placed, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Items: []ItemInput{
			{SKU: "SKU-A", Quantity: 2},
			{SKU: "SKU-B", Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusConfirmed, placed.Status)
	assert.Regexp(t, trackingNumberPattern, placed.TrackingNumber)
	assert.Equal(t, customer.UUID, placed.CustomerUUID)
	require.Len(t, placed.Items, 2)

	// 19.99 * 2 = 39.98 which rounds to 40; 5.00 * 3 = 15.
	assert.True(t, placed.Items[0].TotalPrice.Equal(decimal.NewFromInt(40)),
		"line total %s", placed.Items[0].TotalPrice)
	assert.True(t, placed.Items[1].TotalPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, placed.TotalPrice.Equal(decimal.NewFromInt(55)))

	assert.Equal(t, "Product SKU-A", placed.Items[0].Name)
	assert.True(t, placed.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, "Brand-SKU-A", placed.Items[0].Brand)

	var stockA, stockB models.Product
	require.NoError(t, conn.Where("sku = ?", "SKU-A").First(&stockA).Error)
	require.NoError(t, conn.Where("sku = ?", "SKU-B").First(&stockB).Error)
	assert.Equal(t, 8, stockA.Quantity)
	assert.True(t, stockA.InStock)
	assert.Equal(t, 1, stockB.Quantity)
	assert.True(t, stockB.InStock)
}

func TestPlaceOrderDrainsStockToZero(t *testing.T) {
	conn, svc := setupOrdersTest(t)

	customer := mustSeedCustomer(t, conn, "bob@example.com")
	mustSeedProduct(t, conn, "SKU-C", "10.00", 3)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Items:        []ItemInput{{SKU: "SKU-C", Quantity: 3}},
	})
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, conn.Where("sku = ?", "SKU-C").First(&product).Error)
	assert.Equal(t, 0, product.Quantity)
	assert.False(t, product.InStock)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	conn, svc := setupOrdersTest(t)

	customer := mustSeedCustomer(t, conn, "carol@example.com")

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerUUID: customer.UUID,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, err.Error(), "order must have at least one item")
}

func TestPlaceOrderUnknownCustomerAndSKU(t *testing.T) {
	conn, svc := setupOrdersTest(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: "missing-uuid",
		Items:        []ItemInput{{SKU: "SKU-X", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	customer := mustSeedCustomer(t, conn, "dan@example.com")
	_, err = svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Items:        []ItemInput{{SKU: "SKU-X", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Product with SKU: SKU-X not found")
}

func TestPlaceOrderOversellRollsBackEverything(t *testing.T) {
	conn, svc := setupOrdersTest(t)

	customer := mustSeedCustomer(t, conn, "eve@example.com")
	mustSeedProduct(t, conn, "SKU-D", "10.00", 5)
	mustSeedProduct(t, conn, "SKU-E", "4.00", 1)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Items: []ItemInput{
			{SKU: "SKU-D", Quantity: 2},
			{SKU: "SKU-E", Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, err.Error(), "SKU-E")

	var orderCount, itemCount int64
	require.NoError(t, conn.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, conn.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	var productD models.Product
	require.NoError(t, conn.Where("sku = ?", "SKU-D").First(&productD).Error)
	assert.Equal(t, 5, productD.Quantity, "earlier decrement in the same attempt must roll back")
}

func TestPlaceOrderExplicitStatus(t *testing.T) {
	conn, svc := setupOrdersTest(t)
	ctx := context.Background()

	customer := mustSeedCustomer(t, conn, "fay@example.com")
	mustSeedProduct(t, conn, "SKU-F", "10.00", 5)

	placed, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Status:       "SHIPPED",
		Items:        []ItemInput{{SKU: "SKU-F", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, placed.Status)

	_, err = svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Status:       "MISPLACED",
		Items:        []ItemInput{{SKU: "SKU-F", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListByCustomerUUIDNewestFirst(t *testing.T) {
	conn, svc := setupOrdersTest(t)
	ctx := context.Background()

	customer := mustSeedCustomer(t, conn, "gus@example.com")
	mustSeedProduct(t, conn, "SKU-G", "10.00", 50)

	var placedIDs []int64
	for i := 0; i < 3; i++ {
		placed, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerUUID: customer.UUID,
			Items:        []ItemInput{{SKU: "SKU-G", Quantity: 1}},
		})
		require.NoError(t, err)
		placedIDs = append(placedIDs, placed.ID)
	}

	listed, err := svc.ListByCustomerUUID(ctx, customer.UUID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, placedIDs[2], listed[0].ID)
	assert.Equal(t, placedIDs[1], listed[1].ID)
	assert.Equal(t, placedIDs[0], listed[2].ID)
}

func TestGetByUUIDAndUpdateStatus(t *testing.T) {
	conn, svc := setupOrdersTest(t)
	ctx := context.Background()

	customer := mustSeedCustomer(t, conn, "hera@example.com")
	mustSeedProduct(t, conn, "SKU-H", "10.00", 5)

	placed, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		CustomerUUID: customer.UUID,
		Items:        []ItemInput{{SKU: "SKU-H", Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := svc.GetByUUID(ctx, placed.UUID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	updated, err := svc.UpdateStatus(ctx, placed.UUID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, updated.Status)

	_, err = svc.UpdateStatus(ctx, placed.UUID, "LOST")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
