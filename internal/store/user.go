package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, wrapDB("failed to create user", err)
	}
	return user, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, wrapDB("failed to fetch user", err)
	}
	return &user, nil
}
