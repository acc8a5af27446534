// internal/services/store_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopdash/backend/internal/config"
	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/shopify"
)

type StoreService struct {
	db  *gorm.DB
	cfg *config.Config

	newClient    func(shopURL, accessToken string) ShopifyAPI
	exchangeCode func(ctx context.Context, shopURL, clientID, clientSecret, code string) (string, error)
}

type ConnectStoreRequest struct {
	ShopifyURL  string `json:"shopify_url" validate:"required"`
	AccessToken string `json:"access_token" validate:"required"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
}

func NewStoreService(db *gorm.DB, cfg *config.Config) *StoreService {
	return &StoreService{
		db:  db,
		cfg: cfg,
		newClient: func(shopURL, accessToken string) ShopifyAPI {
			return shopify.NewClient(shopURL, accessToken, cfg.Shopify.APIVersion)
		},
		exchangeCode: shopify.ExchangeOAuthCode,
	}
}

// Connect validates the credentials against the live shop endpoint, then
// upserts the store and provisions its default email flows and tracking page
// config. Reconnecting an existing store only rotates the credential.
func (s *StoreService) Connect(ctx context.Context, req *ConnectStoreRequest) (*models.Store, error) {
	client := s.newClient(req.ShopifyURL, req.AccessToken)
	shop, err := client.GetShop(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid shopify credentials: %w", err)
	}

	name := req.Name
	if name == "" {
		name = shop.Name
	}
	email := req.Email
	if email == "" {
		email = shop.Email
	}

	store, err := s.upsertStore(req.ShopifyURL, req.AccessToken, name, email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureDefaultEmailFlows(store.ID); err != nil {
		return nil, err
	}
	if err := s.ensureDefaultTrackingConfig(store); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"store_id": store.ID,
		"shop":     store.ShopifyURL,
	}).Info("Store connected")

	return store, nil
}

// HandleOAuthCallback finishes the app-install flow: trades the authorization
// code for a permanent token, pulls shop info, and upserts the store.
func (s *StoreService) HandleOAuthCallback(ctx context.Context, shopURL, code string) (*models.Store, error) {
	accessToken, err := s.exchangeCode(ctx, shopURL, s.cfg.Shopify.ClientID, s.cfg.Shopify.ClientSecret, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	name := shopURL
	email := ""
	if shop, err := s.newClient(shopURL, accessToken).GetShop(ctx); err == nil {
		if shop.Name != "" {
			name = shop.Name
		}
		email = shop.Email
	}

	store, err := s.upsertStore(shopURL, accessToken, name, email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureDefaultTrackingConfig(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) GetStore(storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}

func (s *StoreService) upsertStore(shopifyURL, accessToken, name, email string) (*models.Store, error) {
	store := models.Store{
		ShopifyURL:  shopifyURL,
		AccessToken: accessToken,
		Name:        name,
		Email:       email,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_url"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "name", "email", "updated_at"}),
	}).Create(&store).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert store: %w", err)
	}

	var saved models.Store
	if err := s.db.Where("shopify_url = ?", shopifyURL).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}

// Default automation rules provisioned on connect. These rows are declarative
// configuration for the flows editor; the pipeline does not interpret them.
var defaultEmailFlows = []models.EmailFlow{
	{Trigger: "order_confirmed", Delay: "immediately", Subject: "Order confirmed! 🎉", Template: "order_confirmation", Enabled: true, SortOrder: 1},
	{Trigger: "shipped", Delay: "immediately", Subject: "Your order is on its way! 📦", Template: "shipped_notification", Enabled: true, SortOrder: 2},
	{Trigger: "in_transit", Delay: "every_24h", Subject: "Shipping update for your order", Template: "transit_update", Enabled: true, SortOrder: 3},
	{Trigger: "out_for_delivery", Delay: "immediately", Subject: "Your package is out for delivery! 🚚", Template: "out_for_delivery", Enabled: true, SortOrder: 4},
	{Trigger: "delivered", Delay: "immediately", Subject: "Your order has been delivered! ✅", Template: "delivered", Enabled: true, SortOrder: 5},
	{Trigger: "at_post_office", Delay: "immediately", Subject: "Your package is ready for pickup!", Template: "pickup_ready", Enabled: true, SortOrder: 6},
	{Trigger: "no_pickup_reminder", Delay: "48h", Subject: "Reminder: Your package is waiting", Template: "pickup_reminder", Enabled: true, SortOrder: 7},
	{Trigger: "review_request", Delay: "3d", Subject: "How was your order?", Template: "review_request", Enabled: false, SortOrder: 8},
}

func (s *StoreService) ensureDefaultEmailFlows(storeID uuid.UUID) error {
	for _, flow := range defaultEmailFlows {
		var count int64
		err := s.db.Model(&models.EmailFlow{}).
			Where(`store_id = ? AND "trigger" = ?`, storeID, flow.Trigger).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			continue
		}

		flow.StoreID = storeID
		if err := s.db.Create(&flow).Error; err != nil {
			return fmt.Errorf("failed to create email flow %s: %w", flow.Trigger, err)
		}
	}
	return nil
}

func (s *StoreService) ensureDefaultTrackingConfig(store *models.Store) error {
	var count int64
	err := s.db.Model(&models.TrackingConfig{}).
		Where("store_id = ?", store.ID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil
	}

	theme := fmt.Sprintf(`{"primary":"#6366f1","accent":"#34d399","bg":"#0a0a16","text":"#e2e8f0","storeName":%q}`, store.Name)
	cfg := models.TrackingConfig{
		StoreID:  store.ID,
		Theme:    models.RawJSON(theme),
		Sections: models.RawJSON(`[]`),
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to create tracking config: %w", err)
	}
	return nil
}
