package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intania/shop-backend/internal/models"
)

type GormFavoriteStore struct {
	DB *gorm.DB
}

func NewGormFavoriteStore(db *gorm.DB) *GormFavoriteStore {
	return &GormFavoriteStore{DB: db}
}

// Add upserts against the composite primary key with DO NOTHING and reads
// the canonical row back in the same transaction: a re-add is a no-op and
// the returned created_at is always the original insert's.
func (s *GormFavoriteStore) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	var out models.Favorite
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fav := models.Favorite{UserID: userID, ProductID: productID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&fav).Error; err != nil {
			return wrapDB("failed to add favorite", err)
		}

		if err := tx.
			Where("user_id = ? AND product_id = ?", userID, productID).
			Take(&out).Error; err != nil {
			return wrapDB("failed to fetch favorite", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
