package cart

import (
	"context"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/store"
)

type Service struct {
	Carts store.CartStore
}

func New(carts store.CartStore) *Service {
	return &Service{Carts: carts}
}

type AddToCartResult struct {
	Item    *models.CartItem `json:"item"`
	Message string           `json:"message"`
}

// AddToCart lazily creates the user's cart and accumulates quantity onto the
// (cart, variant) row. Both steps are single atomic gateway calls; nothing
// is persisted when validation fails.
func (s *Service) AddToCart(ctx context.Context, userID, variantID int64, quantity int) (*AddToCartResult, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_to_cart", "user_id", userID)

	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}

	cartID, err := s.Carts.GetOrCreateCartID(ctx, userID)
	if err != nil {
		l.Error("add_to_cart_failed", "reason", "cart lookup failed", "error", err)
		return nil, err
	}

	item, err := s.Carts.AddOrIncrementItem(ctx, cartID, variantID, quantity)
	if err != nil {
		l.Error("add_to_cart_failed", "reason", "item upsert failed", "error", err)
		return nil, err
	}

	l.Info("add_to_cart_success", "cart_id", cartID, "variant_id", variantID, "quantity", item.Quantity)
	return &AddToCartResult{Item: item, Message: "Item added to cart"}, nil
}
