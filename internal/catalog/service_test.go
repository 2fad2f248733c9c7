package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marioskal/eshop-backend/pkg/db/models"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Brand{}, &models.Category{}, &models.Region{}))
	return db
}

func TestListBrandsSortedByName(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	for _, name := range []string{"Zeta", "Acme", "Mid"} {
		require.NoError(t, db.Create(&models.Brand{Name: name}).Error)
	}

	brands, err := svc.ListBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 3)
	assert.Equal(t, "Acme", brands[0].Name)
	assert.Equal(t, "Mid", brands[1].Name)
	assert.Equal(t, "Zeta", brands[2].Name)
}

func TestResolveRegion(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Region{Name: "Attica"}).Error)

	ctx := context.Background()
	region, err := svc.WithTx(nil).ResolveRegion(ctx, "Attica")
	require.NoError(t, err)
	assert.Equal(t, "Attica", region.Name)

	_, err = svc.WithTx(nil).ResolveRegion(ctx, "Atlantis")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Region with name: Atlantis not found")
}

func TestListCategoriesAndRegionsEmpty(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)

	regions, err := svc.ListRegions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, regions)
}
