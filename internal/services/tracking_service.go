// internal/services/tracking_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopdash/backend/internal/models"
)

type TrackingService struct {
	db *gorm.DB
}

// TrackingPage is the public, customer-safe projection for one tracking
// number. No customer contact details, no amounts, first name only.
type TrackingPage struct {
	OrderNumber       string              `json:"order_number"`
	CustomerName      string              `json:"customer_name"`
	Product           string              `json:"product"`
	Status            models.OrderStatus  `json:"status"`
	Carrier           string              `json:"carrier"`
	TrackingNumber    string              `json:"tracking_number"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery"`
	Events            []TrackingPageEvent `json:"events"`
	Page              PageConfig          `json:"page"`
}

type TrackingPageEvent struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
}

type PageConfig struct {
	Theme     map[string]interface{} `json:"theme"`
	Sections  []PageSection          `json:"sections"`
	CustomCSS string                 `json:"custom_css"`
	StoreName string                 `json:"store_name"`
}

type PageSection struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Enabled  bool                   `json:"enabled"`
	Settings map[string]interface{} `json:"settings"`
	Blocks   []PageBlock            `json:"blocks"`
}

type PageBlock struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Settings map[string]interface{} `json:"settings"`
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// Resolve builds the public tracking page payload for a tracking number.
// Tracking numbers are assumed unique in practice; if duplicates exist the
// first match wins.
func (s *TrackingService) Resolve(trackingNumber string) (*TrackingPage, error) {
	if trackingNumber == "" {
		return nil, ErrTrackingNotFound
	}

	var order models.Order
	err := s.db.Where("tracking_number = ?", trackingNumber).
		Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Preload("Store.TrackingConfig").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTrackingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	events := make([]TrackingPageEvent, 0, len(order.TrackingEvents))
	for i := range order.TrackingEvents {
		e := order.TrackingEvents[i]
		events = append(events, TrackingPageEvent{
			Status:      e.Status,
			Description: e.Description,
			Location:    e.Location,
			Timestamp:   e.Timestamp,
		})
	}

	page := PageConfig{
		Theme:     map[string]interface{}{},
		Sections:  []PageSection{},
		StoreName: order.Store.Name,
	}
	if cfg := order.Store.TrackingConfig; cfg != nil {
		if err := decodeJSONDocument(cfg.Theme, &page.Theme); err != nil {
			return nil, fmt.Errorf("corrupt tracking theme for store %s: %w", order.StoreID, err)
		}
		if err := decodeJSONDocument(cfg.Sections, &page.Sections); err != nil {
			return nil, fmt.Errorf("corrupt tracking sections for store %s: %w", order.StoreID, err)
		}
		page.CustomCSS = cfg.CustomCSS
	}

	return &TrackingPage{
		OrderNumber:       order.OrderNumber,
		CustomerName:      firstName(order.CustomerName),
		Product:           order.Product,
		Status:            order.Status,
		Carrier:           order.Carrier,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: estimatedDelivery(&order),
		Events:            events,
		Page:              page,
	}, nil
}

// estimatedDelivery is a fixed, carrier-unaware heuristic: last known
// movement plus three days, nothing once delivered.
func estimatedDelivery(order *models.Order) *time.Time {
	if order.Status == models.OrderStatusDelivered {
		return nil
	}

	base := order.Date
	if len(order.TrackingEvents) > 0 {
		// Events are loaded newest-first.
		base = order.TrackingEvents[0].Timestamp
	}
	est := base.AddDate(0, 0, 3)
	return &est
}

// decodeJSONDocument unmarshals a raw config column that may hold either a
// native JSON document or a JSON-encoded string containing one (older rows
// were written stringified). Empty input leaves out untouched.
func decodeJSONDocument(raw models.RawJSON, out interface{}) error {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return err
		}
		trimmed = []byte(inner)
	}
	return json.Unmarshal(trimmed, out)
}

// GetConfig returns the store's tracking page config, or an empty default if
// none has been saved yet.
func (s *TrackingService) GetConfig(storeID uuid.UUID) (*models.TrackingConfig, error) {
	var cfg models.TrackingConfig
	err := s.db.Where("store_id = ?", storeID).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return &models.TrackingConfig{
			StoreID:  storeID,
			Theme:    models.RawJSON(`{}`),
			Sections: models.RawJSON(`[]`),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cfg, nil
}

type UpdateTrackingConfigRequest struct {
	Theme      models.RawJSON `json:"theme,omitempty"`
	Sections   models.RawJSON `json:"sections,omitempty"`
	CustomCSS  *string        `json:"custom_css,omitempty"`
	CustomHead *string        `json:"custom_head,omitempty"`
}

// UpsertConfig saves customizer changes; omitted fields keep their value.
func (s *TrackingService) UpsertConfig(storeID uuid.UUID, req *UpdateTrackingConfigRequest) (*models.TrackingConfig, error) {
	cfg := models.TrackingConfig{
		StoreID:  storeID,
		Theme:    models.RawJSON(`{}`),
		Sections: models.RawJSON(`[]`),
	}
	if len(req.Theme) > 0 {
		cfg.Theme = req.Theme
	}
	if len(req.Sections) > 0 {
		cfg.Sections = req.Sections
	}
	if req.CustomCSS != nil {
		cfg.CustomCSS = *req.CustomCSS
	}
	if req.CustomHead != nil {
		cfg.CustomHead = *req.CustomHead
	}

	assignments := map[string]interface{}{"updated_at": time.Now()}
	if len(req.Theme) > 0 {
		assignments["theme"] = req.Theme
	}
	if len(req.Sections) > 0 {
		assignments["sections"] = req.Sections
	}
	if req.CustomCSS != nil {
		assignments["custom_css"] = *req.CustomCSS
	}
	if req.CustomHead != nil {
		assignments["custom_head"] = *req.CustomHead
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&cfg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert tracking config: %w", err)
	}

	var saved models.TrackingConfig
	if err := s.db.Where("store_id = ?", storeID).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}
