package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/service/catalog"
	"github.com/intania/shop-backend/internal/store"
	"github.com/intania/shop-backend/internal/util"
)

type ProductHandler struct {
	Catalog  *catalog.Service
	Producer EventPublisher
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

type productBody struct {
	Name          string                `json:"name"`
	Description   *string               `json:"description"`
	Price         float64               `json:"price"`
	Status        *models.ProductStatus `json:"status"`
	Category      *string               `json:"category"`
	StockQuantity *int                  `json:"stock_quantity"`
	PreviewImage  models.StringList     `json:"preview_image"`
	PreviewVideo  models.StringList     `json:"preview_video"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req productBody
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.Create(ctx, catalog.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Status:        req.Status,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		PreviewImage:  req.PreviewImage,
		PreviewVideo:  req.PreviewVideo,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("page_size"), util.DefaultPageSize)

	res, err := h.Catalog.List(c.Request().Context(), page, size)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	name := c.QueryParam("name")
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("page_size"), util.DefaultPageSize)

	res, err := h.Catalog.Search(c.Request().Context(), name, page, size)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req struct {
		Name          *string               `json:"name"`
		Description   *string               `json:"description"`
		Price         *float64              `json:"price"`
		Status        *models.ProductStatus `json:"status"`
		Category      *string               `json:"category"`
		StockQuantity *int                  `json:"stock_quantity"`
		PreviewImage  models.StringList     `json:"preview_image"`
		PreviewVideo  models.StringList     `json:"preview_video"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.Update(ctx, id, store.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Status:        req.Status,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		PreviewImage:  req.PreviewImage,
		PreviewVideo:  req.PreviewVideo,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}
