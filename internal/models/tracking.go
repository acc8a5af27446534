// internal/models/tracking.go
package models

import "github.com/google/uuid"

// TrackingConfig holds the customer-facing tracking page customization,
// one per store. Theme and Sections are stored as raw JSON because the page
// customizer has written both native and stringified documents over time; the
// tracking resolver normalizes them on read.
type TrackingConfig struct {
	BaseModel
	StoreID    uuid.UUID `json:"store_id" gorm:"type:uuid;uniqueIndex;not null"`
	Theme      RawJSON   `json:"theme" gorm:"type:jsonb"`
	Sections   RawJSON   `json:"sections" gorm:"type:jsonb"`
	CustomCSS  string    `json:"custom_css" gorm:"type:text"`
	CustomHead string    `json:"custom_head" gorm:"type:text"`
}
