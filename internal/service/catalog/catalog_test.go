package catalog

import (
	"context"
	"fmt"
	"strings"
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
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Variant{}))

	return New(store.NewGormProductStore(db)), db
}

func TestCreateValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"blank name", CreateProductInput{Name: "   ", Price: 10}},
		{"name too long", CreateProductInput{Name: strings.Repeat("x", 151), Price: 10}},
		{"zero price", CreateProductInput{Name: "ok", Price: 0}},
		{"negative price", CreateProductInput{Name: "ok", Price: -1}},
	}
	for _, tc := range cases {
		_, err := s.Create(ctx, tc.input)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err), tc.name)
	}
}

func TestCreateDefaultsStatus(t *testing.T) {
	s, _ := newTestService(t)

	created, err := s.Create(context.Background(), CreateProductInput{Name: "Poster", Price: 3})
	require.NoError(t, err)
	require.Equal(t, models.StatusInStock, created.Status)

	status := models.StatusPreorder
	created, err = s.Create(context.Background(), CreateProductInput{Name: "Pin", Price: 2, Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.StatusPreorder, created.Status)
}

func TestCreateDuplicateName(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, CreateProductInput{Name: "Hoodie", Price: 30})
	require.NoError(t, err)

	_, err = s.Create(ctx, CreateProductInput{Name: "hoodie", Price: 25})
	require.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))
}

func TestGetValidation(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Get(context.Background(), 0)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Get(context.Background(), 99)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListPagination(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := s.Create(ctx, CreateProductInput{Name: fmt.Sprintf("product %02d", i), Price: float64(i)})
		require.NoError(t, err)
	}

	page, err := s.List(ctx, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 25, page.Total)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 10)
	// newest first
	require.Equal(t, "product 25", page.Items[0].Name)
	require.True(t, page.Items[0].ID > page.Items[1].ID)

	// page_size clamped to 100
	page, err = s.List(ctx, 1, 500)
	require.NoError(t, err)
	require.Equal(t, 100, page.PageSize)
	require.Equal(t, 1, page.TotalPages)

	// page clamped to 1
	page, err = s.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 10)

	page, err = s.List(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
}

func TestUpdate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateProductInput{Name: "Desk", Price: 100})
	require.NoError(t, err)

	badName := " "
	badPrice := -5.0
	_, err = s.Update(ctx, created.ID, store.ProductPatch{Name: &badName, Price: &badPrice})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// partial update with only one of name/price skips revalidation
	newPrice := 120.0
	updated, err := s.Update(ctx, created.ID, store.ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 120.0, updated.Price)
	require.Equal(t, "Desk", updated.Name)

	_, err = s.Update(ctx, 999, store.ProductPatch{Price: &newPrice})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = s.Update(ctx, -1, store.ProductPatch{})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateProductInput{Name: "Chair", Price: 60})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(s.Delete(ctx, created.ID)))
	require.Equal(t, apperr.KindValidation, apperr.KindOf(s.Delete(ctx, 0)))
}

func TestSearch(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Search(ctx, "  ", 1, 10)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Create(ctx, CreateProductInput{Name: "Blue Hoodie", Price: 30})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateProductInput{Name: "Red Hoodie", Price: 25})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateProductInput{Name: "Socks", Price: 4})
	require.NoError(t, err)

	page, err := s.Search(ctx, "hoodie", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	require.Equal(t, 1, page.TotalPages)
}
