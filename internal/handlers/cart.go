package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/logging"
	authmw "github.com/intania/shop-backend/internal/middleware/auth"
	"github.com/intania/shop-backend/internal/service/cart"
)

type CartHandler struct {
	Carts    *cart.Service
	Producer EventPublisher
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["user_id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// AddItem handles PUT /cart/items. The body may carry user_id; when it does
// not, the authenticated subject is used.
func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req struct {
		UserID    int64 `json:"user_id"`
		VariantID int64 `json:"variant_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.UserID == 0 {
		id, err := authmw.SubjectID(c)
		if err != nil {
			return errorJSON(c, err)
		}
		req.UserID = id
	}

	res, err := h.Carts.AddToCart(ctx, req.UserID, req.VariantID, req.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_added",
		"user_id":    req.UserID,
		"variant_id": req.VariantID,
		"quantity":   res.Item.Quantity,
	})
	return c.JSON(http.StatusOK, res)
}
