package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/logging"
	authmw "github.com/intania/shop-backend/internal/middleware/auth"
	"github.com/intania/shop-backend/internal/service/favorite"
)

type FavoriteHandler struct {
	Favorites *favorite.Service
	Producer  EventPublisher
}

func (h *FavoriteHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "favorite_events", fmt.Sprint(event["user_id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// AddFavorite handles PUT /favorites.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.add")

	var req struct {
		UserID    int64 `json:"user_id"`
		ProductID int64 `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_favorite_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.UserID == 0 {
		id, err := authmw.SubjectID(c)
		if err != nil {
			return errorJSON(c, err)
		}
		req.UserID = id
	}

	res, err := h.Favorites.Add(ctx, req.UserID, req.ProductID)
	if err != nil {
		return errorJSON(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "favorite_added",
		"user_id":    req.UserID,
		"product_id": req.ProductID,
	})
	return c.JSON(http.StatusOK, res)
}
