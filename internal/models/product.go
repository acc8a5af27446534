// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product mirrors one Shopify product (first purchasable variant). InStock
// normally reflects stock > 0 but a manual toggle is authoritative until the
// next sync overwrites stock. SalesPerDay is derived by the forecast engine.
type Product struct {
	BaseModel
	StoreID     uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	ShopifyID   string          `json:"shopify_id" gorm:"size:64;uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	SKU         string          `json:"sku" gorm:"size:120"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:decimal(10,2)"`
	Stock       int             `json:"stock" gorm:"default:0"`
	SalesPerDay float64         `json:"sales_per_day" gorm:"default:0"`
	InStock     bool            `json:"in_stock" gorm:"index"`
	ImageURL    string          `json:"image_url" gorm:"size:512"`

	Store Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}
