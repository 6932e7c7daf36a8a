package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Variant{}, &models.Cart{}, &models.CartItem{}))

	return New(store.NewGormCartStore(db)), db
}

func seedVariant(t *testing.T, db *gorm.DB) *models.Variant {
	t.Helper()
	p := &models.Product{Name: "shirt", Price: 10, Status: models.StatusInStock}
	require.NoError(t, db.Create(p).Error)
	v := &models.Variant{ProductID: p.ID}
	require.NoError(t, db.Create(v).Error)
	return v
}

func TestAddToCartAccumulates(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	v := seedVariant(t, db)

	first, err := s.AddToCart(ctx, 1, v.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.Item.Quantity)
	require.Equal(t, "Item added to cart", first.Message)

	second, err := s.AddToCart(ctx, 1, v.ID, 3)
	require.NoError(t, err)
	require.Equal(t, first.Item.ID, second.Item.ID)
	require.Equal(t, first.Item.CartID, second.Item.CartID)
	require.Equal(t, 5, second.Item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddToCartInvalidQuantity(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	v := seedVariant(t, db)

	for _, qty := range []int{0, -1} {
		_, err := s.AddToCart(ctx, 1, v.ID, qty)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	// nothing persisted on validation failure
	var carts, items int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.EqualValues(t, 0, carts)
	require.EqualValues(t, 0, items)
}

func TestAddToCartUnknownVariant(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, 1, 999, 1)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.EqualValues(t, 0, items)
}

func TestAddToCartSeparateUsers(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	v := seedVariant(t, db)

	a, err := s.AddToCart(ctx, 1, v.ID, 1)
	require.NoError(t, err)
	b, err := s.AddToCart(ctx, 2, v.ID, 1)
	require.NoError(t, err)
	require.NotEqual(t, a.Item.CartID, b.Item.CartID)
}
