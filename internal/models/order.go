// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order mirrors one Shopify order. ShopifyID is the correlation key for
// upserts; customer name/email, amount and date are written once on create and
// never overwritten by a later sync.
type Order struct {
	BaseModel
	StoreID       uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	ShopifyID     string          `json:"shopify_id" gorm:"size:64;uniqueIndex;not null"`
	OrderNumber   string          `json:"order_number" gorm:"size:32"`
	CustomerName  string          `json:"customer_name" gorm:"size:255"`
	CustomerEmail string          `json:"customer_email" gorm:"size:255"`
	Product       string          `json:"product" gorm:"size:255"` // denormalized first line-item title, not a foreign key
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
	Currency      string          `json:"currency" gorm:"size:8"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);default:'unfulfilled';index"`
	Date          time.Time       `json:"date" gorm:"index"`

	// Shipping address. AddressValid is always written explicitly; a gorm
	// default tag would drop false from the INSERT.
	Address      string `json:"address" gorm:"size:255"`
	City         string `json:"city" gorm:"size:120"`
	Zip          string `json:"zip" gorm:"size:32"`
	Country      string `json:"country" gorm:"size:8"`
	AddressValid bool   `json:"address_valid" gorm:"index"`

	TrackingNumber string `json:"tracking_number" gorm:"size:64;index"`
	TrackingURL    string `json:"tracking_url" gorm:"size:512"`
	Carrier        string `json:"carrier" gorm:"size:120"`

	// Relationships
	Store          Store           `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	TrackingEvents []TrackingEvent `json:"tracking_events,omitempty" gorm:"foreignKey:OrderID"`
	Emails         []Email         `json:"emails,omitempty" gorm:"foreignKey:OrderID"`
}

// TrackingEvent is append-only; displayed newest first.
type TrackingEvent struct {
	BaseModel
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	Status      string    `json:"status" gorm:"size:64"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location" gorm:"size:255"`
	Timestamp   time.Time `json:"timestamp" gorm:"index"`
}
