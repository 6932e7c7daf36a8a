package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type ProductStatus string

const (
	StatusPreorder   ProductStatus = "PREORDER"
	StatusInStock    ProductStatus = "IN_STOCK"
	StatusOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// StringList is stored as a JSON-encoded text column so the same model works
// on postgres and the sqlite test database.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return json.Unmarshal(data, l)
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"  json:"id"`
	FullName     string    `gorm:"not null"                  json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	Role         Role      `gorm:"not null;default:USER"     json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID            int64         `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string        `gorm:"size:150;not null"         json:"name"`
	Description   *string       `json:"description,omitempty"`
	Price         float64       `gorm:"not null"                  json:"price"`
	Status        ProductStatus `gorm:"not null;default:IN_STOCK" json:"status"`
	Category      *string       `json:"category,omitempty"`
	StockQuantity *int          `json:"stock_quantity,omitempty"`
	PreviewImage  StringList    `gorm:"type:text"                 json:"preview_image,omitempty"`
	PreviewVideo  StringList    `gorm:"type:text"                 json:"preview_video,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Variant struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"variant_id"`
	ProductID     int64   `gorm:"index;not null"           json:"product_id"`
	Size          *string `json:"size,omitempty"`
	Color         *string `json:"color,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
}

type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"cart_id"`
	UserID    int64     `gorm:"uniqueIndex;not null"     json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"              json:"item_id"`
	CartID    int64 `gorm:"uniqueIndex:idx_cart_variant;not null" json:"cart_id"`
	VariantID int64 `gorm:"uniqueIndex:idx_cart_variant;not null" json:"variant_id"`
	Quantity  int   `gorm:"not null;check:quantity > 0"           json:"quantity"`
}

type Favorite struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID int64     `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
