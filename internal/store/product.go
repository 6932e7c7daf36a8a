package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

type GormProductStore struct {
	DB *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{DB: db}
}

func (s *GormProductStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, wrapDB("failed to create product", err)
	}
	return product, nil
}

func (s *GormProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, wrapDB("failed to fetch product", err)
	}
	return &product, nil
}

func (s *GormProductStore) FindAll(ctx context.Context, offset, limit int) ([]models.Product, error) {
	items := make([]models.Product, 0, limit)
	if err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, wrapDB("failed to fetch products", err)
	}
	return items, nil
}

func (s *GormProductStore) Update(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("product not found")
			}
			return wrapDB("failed to fetch product", err)
		}

		if patch.Name != nil {
			product.Name = *patch.Name
		}
		if patch.Description != nil {
			product.Description = patch.Description
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.Status != nil {
			product.Status = *patch.Status
		}
		if patch.Category != nil {
			product.Category = patch.Category
		}
		if patch.StockQuantity != nil {
			product.StockQuantity = patch.StockQuantity
		}
		if patch.PreviewImage != nil {
			product.PreviewImage = patch.PreviewImage
		}
		if patch.PreviewVideo != nil {
			product.PreviewVideo = patch.PreviewVideo
		}

		if err := tx.Save(&product).Error; err != nil {
			return wrapDB("failed to update product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) Delete(ctx context.Context, id int64) error {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return wrapDB("failed to delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

// likePattern matches the name anywhere, case-insensitively, on both
// postgres and sqlite.
func likePattern(name string) string {
	return "%" + strings.ToLower(name) + "%"
}

func (s *GormProductStore) SearchByName(ctx context.Context, name string, offset, limit int) ([]models.Product, error) {
	items := make([]models.Product, 0, limit)
	if err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ?", likePattern(name)).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, wrapDB("failed to search products", err)
	}
	return items, nil
}

func (s *GormProductStore) CountByName(ctx context.Context, name string) (int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ?", likePattern(name)).
		Count(&total).Error; err != nil {
		return 0, wrapDB("failed to count products", err)
	}
	return total, nil
}

func (s *GormProductStore) CountTotal(ctx context.Context) (int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, wrapDB("failed to count products", err)
	}
	return total, nil
}
