// internal/models/store.go
package models

import "github.com/google/uuid"

// Store is the aggregate root: every other entity is scoped to exactly one
// store, and all queries filter by StoreID except the public tracking lookup.
type Store struct {
	BaseModel
	ShopifyURL  string `json:"shopify_url" gorm:"size:255;uniqueIndex;not null"`
	AccessToken string `json:"-" gorm:"size:255;not null"`
	Name        string `json:"name" gorm:"size:255"`
	Email       string `json:"email" gorm:"size:255"`

	// Relationships
	Products       []Product       `json:"products,omitempty" gorm:"foreignKey:StoreID"`
	Orders         []Order         `json:"orders,omitempty" gorm:"foreignKey:StoreID"`
	Emails         []Email         `json:"emails,omitempty" gorm:"foreignKey:StoreID"`
	EmailFlows     []EmailFlow     `json:"email_flows,omitempty" gorm:"foreignKey:StoreID"`
	ProfitEntries  []ProfitEntry   `json:"profit_entries,omitempty" gorm:"foreignKey:StoreID"`
	TrackingConfig *TrackingConfig `json:"tracking_config,omitempty" gorm:"foreignKey:StoreID"`
}

// EmailFlow is a per-store automation rule. Rows are persisted configuration
// only: nothing interprets them yet, the explicit dispatch paths in the
// address and order services are the only emails actually sent.
type EmailFlow struct {
	BaseModel
	StoreID   uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`
	Trigger   string    `json:"trigger" gorm:"size:100;not null"`
	Delay     string    `json:"delay" gorm:"size:50;default:'immediately'"`
	Subject   string    `json:"subject" gorm:"size:255"`
	Template  string    `json:"template" gorm:"size:100"`
	Enabled   bool      `json:"enabled"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
}
