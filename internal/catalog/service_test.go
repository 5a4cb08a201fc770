package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/db"
	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/models"
)

func setupCatalog(t *testing.T) (*catalog.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return catalog.NewService(testDB, latency.New(0, 0)), testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB) (models.Canteen, models.Canteen, models.FoodCategory) {
	t.Helper()

	c1 := models.Canteen{Name: "The Hungry Scholar", Location: "IT Building"}
	c2 := models.Canteen{Name: "Main Canteen", Location: "Main Campus"}
	cat := models.FoodCategory{Name: "Breakfast"}
	assert.NoError(t, testDB.Create(&c1).Error)
	assert.NoError(t, testDB.Create(&c2).Error)
	assert.NoError(t, testDB.Create(&cat).Error)
	return c1, c2, cat
}

func TestCreateAndListItems(t *testing.T) {
	svc, testDB := setupCatalog(t)
	c1, c2, cat := seedCatalog(t, testDB)

	_, err := svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Poha", Price: 30, CategoryID: cat.ID, CanteenID: c1.ID, Available: true,
	})
	assert.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Toast Sandwich", Price: 35, CategoryID: cat.ID, CanteenID: c2.ID, Available: true,
	})
	assert.NoError(t, err)

	all, err := svc.ListItems(context.Background(), 0, 0)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	scholarOnly, err := svc.ListItems(context.Background(), c1.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, scholarOnly, 1)
	assert.Equal(t, "Poha", scholarOnly[0].Name)

	breakfastAtMain, err := svc.ListItems(context.Background(), c2.ID, cat.ID)
	assert.NoError(t, err)
	assert.Len(t, breakfastAtMain, 1)
	assert.Equal(t, "Toast Sandwich", breakfastAtMain[0].Name)
}

func TestCreateItemValidation(t *testing.T) {
	svc, testDB := setupCatalog(t)
	c1, _, cat := seedCatalog(t, testDB)

	_, err := svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Freebie", Price: -1, CategoryID: cat.ID, CanteenID: c1.ID,
	})
	assert.ErrorIs(t, err, catalog.ErrValidation)

	_, err = svc.CreateItem(context.Background(), models.FoodItem{
		Name: "  ", Price: 10, CategoryID: cat.ID, CanteenID: c1.ID,
	})
	assert.ErrorIs(t, err, catalog.ErrValidation)

	_, err = svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Orphan", Price: 10, CategoryID: 999, CanteenID: c1.ID,
	})
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)

	_, err = svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Nowhere", Price: 10, CategoryID: cat.ID, CanteenID: 999,
	})
	assert.ErrorIs(t, err, catalog.ErrCanteenNotFound)
}

func TestUpdateItem(t *testing.T) {
	svc, testDB := setupCatalog(t)
	c1, _, cat := seedCatalog(t, testDB)

	item, err := svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Tea", Price: 15, CategoryID: cat.ID, CanteenID: c1.ID, Available: true,
	})
	assert.NoError(t, err)

	item.Price = 18
	item.Description = "Indian masala chai"
	updated, err := svc.UpdateItem(context.Background(), item)
	assert.NoError(t, err)
	assert.Equal(t, 18.0, updated.Price)

	got, err := svc.GetItem(context.Background(), item.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Indian masala chai", got.Description)

	missing := item
	missing.ID = 999
	_, err = svc.UpdateItem(context.Background(), missing)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	svc, testDB := setupCatalog(t)
	c1, _, cat := seedCatalog(t, testDB)

	item, err := svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Samosa", Price: 15, CategoryID: cat.ID, CanteenID: c1.ID, Available: true,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteItem(context.Background(), item.ID))

	_, err = svc.GetItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)

	assert.ErrorIs(t, svc.DeleteItem(context.Background(), item.ID), catalog.ErrItemNotFound)
}

func TestToggleAvailability(t *testing.T) {
	svc, testDB := setupCatalog(t)
	c1, _, cat := seedCatalog(t, testDB)

	item, err := svc.CreateItem(context.Background(), models.FoodItem{
		Name: "Thali", Price: 100, CategoryID: cat.ID, CanteenID: c1.ID, Available: true,
	})
	assert.NoError(t, err)

	toggled, err := svc.ToggleAvailability(context.Background(), item.ID)
	assert.NoError(t, err)
	assert.False(t, toggled.Available)

	toggled, err = svc.ToggleAvailability(context.Background(), item.ID)
	assert.NoError(t, err)
	assert.True(t, toggled.Available)

	_, err = svc.ToggleAvailability(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestListCanteensAndCategories(t *testing.T) {
	svc, testDB := setupCatalog(t)
	seedCatalog(t, testDB)

	canteens, err := svc.ListCanteens(context.Background())
	assert.NoError(t, err)
	assert.Len(t, canteens, 2)

	categories, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, categories, 1)
}
