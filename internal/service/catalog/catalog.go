package catalog

import (
	"context"
	"strings"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/store"
	"github.com/intania/shop-backend/internal/util"
)

const maxNameLen = 150

type Service struct {
	Products store.ProductStore
}

func New(products store.ProductStore) *Service {
	return &Service{Products: products}
}

type CreateProductInput struct {
	Name          string
	Description   *string
	Price         float64
	Status        *models.ProductStatus
	Category      *string
	StockQuantity *int
	PreviewImage  models.StringList
	PreviewVideo  models.StringList
}

type ProductPage struct {
	Items      []models.Product `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func validateProductData(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("product name is required")
	}
	if len(name) > maxNameLen {
		return apperr.Validation("product name must be 150 characters or less")
	}
	if price <= 0 {
		return apperr.Validation("product price must be greater than 0")
	}
	return nil
}

// Create validates, defaults the status to IN_STOCK and rejects names that
// already match an existing product (case-insensitive). The existence check
// and the insert are two separate gateway calls; exactly-one-row-per-name
// under concurrent creators needs a unique constraint at the storage layer.
func (s *Service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := validateProductData(input.Name, input.Price); err != nil {
		return nil, err
	}

	status := models.StatusInStock
	if input.Status != nil {
		status = *input.Status
	}

	existing, err := s.Products.SearchByName(ctx, input.Name, 0, 1)
	if err != nil {
		l.Error("create_product_failed", "reason", "name check failed", "error", err)
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperr.AlreadyExists("product with this name already exists")
	}

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Status:        status,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		PreviewImage:  input.PreviewImage,
		PreviewVideo:  input.PreviewVideo,
	}

	created, err := s.Products.Create(ctx, product)
	if err != nil {
		l.Error("create_product_failed", "reason", "insert failed", "error", err)
		return nil, err
	}

	l.Info("create_product_success", "product_id", created.ID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, apperr.Validation("invalid product ID")
	}
	return s.Products.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	page, pageSize, offset := util.Paginate(page, pageSize)

	items, err := s.Products.FindAll(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.Products.CountTotal(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: util.TotalPages(total, pageSize),
	}, nil
}

// Update applies a partial patch. When both a new name and a new price are
// present the same validation as Create runs first.
func (s *Service) Update(ctx context.Context, id int64, patch store.ProductPatch) (*models.Product, error) {
	if id <= 0 {
		return nil, apperr.Validation("invalid product ID")
	}

	if patch.Name != nil && patch.Price != nil {
		if err := validateProductData(*patch.Name, *patch.Price); err != nil {
			return nil, err
		}
	}

	if _, err := s.Products.FindByID(ctx, id); err != nil {
		return nil, err
	}

	return s.Products.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.Validation("invalid product ID")
	}
	return s.Products.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, name string, page, pageSize int) (*ProductPage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("search name cannot be empty")
	}

	page, pageSize, offset := util.Paginate(page, pageSize)

	items, err := s.Products.SearchByName(ctx, name, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.Products.CountByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: util.TotalPages(total, pageSize),
	}, nil
}
