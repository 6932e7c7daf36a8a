// Package store is the persistence gateway. Services depend on the
// per-aggregate interfaces declared here and never on a concrete storage
// technology; the GORM implementations provide the single-operation
// atomicity the services assume (conflict-safe cart creation, conditional
// quantity upsert, insert-or-return-existing favorites).
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail reports absence as a KindNotFound error.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *float64
	Status        *models.ProductStatus
	Category      *string
	StockQuantity *int
	PreviewImage  models.StringList
	PreviewVideo  models.StringList
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAll(ctx context.Context, offset, limit int) ([]models.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string, offset, limit int) ([]models.Product, error)
	CountByName(ctx context.Context, name string) (int64, error)
	CountTotal(ctx context.Context) (int64, error)
}

type CartStore interface {
	// GetOrCreateCartID is an atomic "insert if absent, else fetch existing
	// id": concurrent first-time adds for one user end up with one cart row.
	GetOrCreateCartID(ctx context.Context, userID int64) (int64, error)
	// AddOrIncrementItem verifies the variant exists and then upserts the
	// (cart_id, variant_id) row in one unit, accumulating quantity.
	AddOrIncrementItem(ctx context.Context, cartID, variantID int64, quantity int) (*models.CartItem, error)
}

type FavoriteStore interface {
	// Add inserts the pair or returns the existing row unchanged, keeping
	// the original created_at.
	Add(ctx context.Context, userID, productID int64) (*models.Favorite, error)
}

// wrapDB converts a gorm error into the opaque DatabaseError kind so storage
// structure never leaks to callers.
func wrapDB(message string, err error) error {
	return apperr.Database(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
