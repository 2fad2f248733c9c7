package products

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/internal/catalog"
	"github.com/marioskal/eshop-backend/pkg/config"
	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
	"github.com/marioskal/eshop-backend/pkg/storage/local"
)

func setupProductsTest(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.AttachmentPhoto{},
		&models.Product{},
	))

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	require.NoError(t, err)

	store, err := local.NewStore(context.Background(), config.StorageConfig{UploadDir: t.TempDir()}, nil)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), catalogSvc, store)
	require.NoError(t, err)
	return conn, svc
}

func mustSeedLookups(t *testing.T, conn *gorm.DB) {
	t.Helper()

	for _, name := range []string{"Acme", "Globex"} {
		require.NoError(t, conn.Create(&models.Brand{Name: name}).Error)
	}
	for _, name := range []string{"Laptops", "Phones"} {
		require.NoError(t, conn.Create(&models.Category{Name: name}).Error)
	}
}

func mustCreateProduct(t *testing.T, svc Service, input CreateProductInput) *ProductDTO {
	t.Helper()

	created, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	return created
}

func TestCreateProductAndGet(t *testing.T) {
	conn, svc := setupProductsTest(t)
	mustSeedLookups(t, conn)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, CreateProductInput{
		Name:     "ThinkPad X1",
		SKU:      "TP-X1",
		Price:    decimal.RequireFromString("1499.99"),
		Quantity: 5,
		Brand:    "Acme",
		Category: "Laptops",
	})
	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "Acme", created.Brand)
	assert.Equal(t, "Laptops", created.Category)
	assert.True(t, created.InStock)

	bySKU, err := svc.GetBySKU(ctx, "TP-X1")
	require.NoError(t, err)
	assert.Equal(t, created.UUID, bySKU.UUID)

	byID, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad X1", byID.Name)

	_, err = svc.GetBySKU(ctx, "TP-X9")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Product with SKU: TP-X9 not found")
}

func TestCreateProductDuplicateSKUConflicts(t *testing.T) {
	conn, svc := setupProductsTest(t)
	mustSeedLookups(t, conn)

	input := CreateProductInput{
		Name:     "ThinkPad X1",
		SKU:      "TP-X1",
		Price:    decimal.RequireFromString("1499.99"),
		Quantity: 5,
		Brand:    "Acme",
		Category: "Laptops",
	}
	mustCreateProduct(t, svc, input)

	_, err := svc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestCreateProductUnknownBrand(t *testing.T) {
	conn, svc := setupProductsTest(t)
	mustSeedLookups(t, conn)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "ThinkPad X1",
		SKU:      "TP-X1",
		Price:    decimal.RequireFromString("1499.99"),
		Quantity: 5,
		Brand:    "Initech",
		Category: "Laptops",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Brand with name: Initech not found")

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func seedCatalogRows(t *testing.T, conn *gorm.DB, svc Service) {
	t.Helper()

	mustSeedLookups(t, conn)
	rows := []CreateProductInput{
		{Name: "ThinkPad X1", SKU: "TP-X1", Price: decimal.RequireFromString("1499.99"), Quantity: 5, Brand: "Acme", Category: "Laptops"},
		{Name: "ThinkPad T14", SKU: "TP-T14", Price: decimal.RequireFromString("999.00"), Quantity: 0, Brand: "Acme", Category: "Laptops"},
		{Name: "Galaxy Fold", SKU: "GF-1", Price: decimal.RequireFromString("1799.00"), Quantity: 3, Brand: "Globex", Category: "Phones"},
	}
	for _, row := range rows {
		mustCreateProduct(t, svc, row)
	}
}

func TestListProductsNoFilterMatchesAll(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)

	page, err := svc.ListProducts(context.Background(), ListFilter{}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestListProductsFilterComposition(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)
	ctx := context.Background()

	name := "thinkpad"
	page, err := svc.ListProducts(ctx, ListFilter{Name: &name}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	inStock := true
	page, err = svc.ListProducts(ctx, ListFilter{Name: &name, InStock: &inStock}, pagination.Request{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "TP-X1", page.Content[0].SKU)

	brand := "Globex"
	page, err = svc.ListProducts(ctx, ListFilter{Brand: &brand}, pagination.Request{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Galaxy Fold", page.Content[0].Name)

	category := "Laptops"
	page, err = svc.ListProducts(ctx, ListFilter{Brand: &brand, Category: &category}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalElements)

	blank := ""
	page, err = svc.ListProducts(ctx, ListFilter{Name: &blank, Brand: &blank}, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestListAllProducts(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)

	active := true
	rows, err := svc.ListAllProducts(context.Background(), ListFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestUpdateProduct(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)
	ctx := context.Background()

	created, err := svc.GetBySKU(ctx, "TP-T14")
	require.NoError(t, err)
	assert.False(t, created.InStock)

	qty := 7
	brand := "Globex"
	updated, err := svc.UpdateProduct(ctx, created.UUID, UpdateProductInput{
		Quantity: &qty,
		Brand:    &brand,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	assert.True(t, updated.InStock)
	assert.Equal(t, "Globex", updated.Brand)

	sku := "TP-X1"
	_, err = svc.UpdateProduct(ctx, created.UUID, UpdateProductInput{SKU: &sku})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestDeleteProduct(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)
	ctx := context.Background()

	created, err := svc.GetBySKU(ctx, "GF-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.UUID))

	_, err = svc.GetBySKU(ctx, "GF-1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteProduct(ctx, created.UUID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestAttachPhoto(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)
	ctx := context.Background()

	created, err := svc.GetBySKU(ctx, "TP-X1")
	require.NoError(t, err)

	updated, err := svc.AttachPhoto(ctx, created.UUID, PhotoUpload{
		Filename:    "Front.JPG",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Photo)
	assert.Equal(t, "Front.JPG", updated.Photo.Filename)
	assert.Equal(t, "jpg", updated.Photo.Extension)

	replaced, err := svc.AttachPhoto(ctx, created.UUID, PhotoUpload{
		Filename:    "side.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, replaced.Photo)
	assert.Equal(t, "side.png", replaced.Photo.Filename)

	var count int64
	require.NoError(t, conn.Model(&models.AttachmentPhoto{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateProductInactiveStaysInactive(t *testing.T) {
	conn, svc := setupProductsTest(t)
	mustSeedLookups(t, conn)
	ctx := context.Background()

	inactive := false
	created := mustCreateProduct(t, svc, CreateProductInput{
		Name:     "ThinkPad X1 Draft",
		SKU:      "TP-X1D",
		Price:    decimal.RequireFromString("1499.99"),
		Quantity: 5,
		Brand:    "Acme",
		Category: "Laptops",
		IsActive: &inactive,
	})
	assert.False(t, created.IsActive)

	got, err := svc.GetByUUID(ctx, created.UUID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	var stored models.Product
	require.NoError(t, conn.Where("sku = ?", "TP-X1D").First(&stored).Error)
	assert.False(t, stored.IsActive)
}

func TestListProductsNormalizesSort(t *testing.T) {
	conn, svc := setupProductsTest(t)
	seedCatalogRows(t, conn, svc)
	ctx := context.Background()

	page, err := svc.ListProducts(ctx, ListFilter{}, pagination.Request{
		SortBy: "quantity; DELETE FROM products",
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "TP-X1", page.Content[0].SKU)
	assert.Equal(t, pagination.DefaultSize, page.Size)

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}
