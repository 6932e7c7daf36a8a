package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/intania/shop-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Variant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Favorite{},
	))
	return db
}

func createVariant(t *testing.T, db *gorm.DB, productID int64) *models.Variant {
	t.Helper()
	v := &models.Variant{ProductID: productID}
	require.NoError(t, db.Create(v).Error)
	return v
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Status: models.StatusInStock}
	require.NoError(t, db.Create(p).Error)
	return p
}
