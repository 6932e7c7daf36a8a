package favorite

import (
	"context"
	"time"

	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/store"
)

type Service struct {
	Favorites store.FavoriteStore
	Products  store.ProductStore
}

func New(favorites store.FavoriteStore, products store.ProductStore) *Service {
	return &Service{Favorites: favorites, Products: products}
}

type AddFavoriteResult struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
}

// Add records the favorite pair. Re-adding is a no-op: the canonical stored
// row comes back every time, created_at included.
func (s *Service) Add(ctx context.Context, userID, productID int64) (*AddFavoriteResult, error) {
	l := logging.FromContext(ctx).With("svc", "favorite.add", "user_id", userID, "product_id", productID)

	if _, err := s.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	fav, err := s.Favorites.Add(ctx, userID, productID)
	if err != nil {
		l.Error("add_favorite_failed", "error", err)
		return nil, err
	}

	l.Info("add_favorite_success")
	return &AddFavoriteResult{
		UserID:    fav.UserID,
		ProductID: fav.ProductID,
		CreatedAt: fav.CreatedAt,
		Message:   "Added to favorites",
	}, nil
}
