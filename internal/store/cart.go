package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

type GormCartStore struct {
	DB *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{DB: db}
}

// GetOrCreateCartID inserts with ON CONFLICT DO NOTHING against the unique
// index on user_id, then reads the surviving row. Concurrent first-time adds
// therefore converge on a single cart.
func (s *GormCartStore) GetOrCreateCartID(ctx context.Context, userID int64) (int64, error) {
	cart := models.Cart{UserID: userID}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart)
	if res.Error != nil {
		return 0, wrapDB("failed to create cart", res.Error)
	}
	if res.RowsAffected > 0 {
		return cart.ID, nil
	}

	var existing models.Cart
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&existing).Error; err != nil {
		return 0, wrapDB("failed to fetch cart", err)
	}
	return existing.ID, nil
}

// AddOrIncrementItem runs the variant check and the conditional upsert in one
// transaction. The upsert accumulates quantity through the conflict clause on
// (cart_id, variant_id), so concurrent adds on the same pair lose no updates
// and create no duplicate rows.
func (s *GormCartStore) AddOrIncrementItem(ctx context.Context, cartID, variantID int64, quantity int) (*models.CartItem, error) {
	var out models.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant models.Variant
		if err := tx.Select("id").First(&variant, variantID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("variant not found")
			}
			return wrapDB("failed to check variant", err)
		}

		item := models.CartItem{CartID: cartID, VariantID: variantID, Quantity: quantity}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(&item).Error; err != nil {
			return wrapDB("failed to add cart item", err)
		}

		if err := tx.
			Where("cart_id = ? AND variant_id = ?", cartID, variantID).
			Take(&out).Error; err != nil {
			return wrapDB("failed to fetch cart item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
