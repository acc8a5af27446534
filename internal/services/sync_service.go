// internal/services/sync_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopdash/backend/internal/config"
	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/shopify"
)

// ShopifyAPI is the slice of the platform client the sync pipeline needs.
// *shopify.Client satisfies it; tests substitute a fake.
type ShopifyAPI interface {
	GetShop(ctx context.Context) (*shopify.Shop, error)
	ListOrders(ctx context.Context, opts shopify.ListOrdersOptions) ([]shopify.Order, error)
	ListProducts(ctx context.Context, limit int) ([]shopify.Product, error)
	GetProduct(ctx context.Context, id int64) (*shopify.Product, error)
	ListInventoryLevels(ctx context.Context, inventoryItemID int64) ([]shopify.InventoryLevel, error)
	SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error
}

const syncPageLimit = 250

type SyncService struct {
	db              *gorm.DB
	cfg             *config.Config
	addressService  *AddressService
	forecastService *ForecastService
	profitService   *ProfitService

	// newClient builds the platform client for a store; overridable in tests.
	newClient func(store *models.Store) ShopifyAPI
}

type SyncSummary struct {
	Orders           int `json:"orders"`
	Products         int `json:"products"`
	FlaggedAddresses int `json:"flagged_addresses"`
	EmailsSent       int `json:"emails_sent"`
}

func NewSyncService(db *gorm.DB, cfg *config.Config, addressService *AddressService, forecastService *ForecastService, profitService *ProfitService) *SyncService {
	return &SyncService{
		db:              db,
		cfg:             cfg,
		addressService:  addressService,
		forecastService: forecastService,
		profitService:   profitService,
		newClient: func(store *models.Store) ShopifyAPI {
			return shopify.NewClient(store.ShopifyURL, store.AccessToken, cfg.Shopify.APIVersion)
		},
	}
}

// deriveOrderStatus maps Shopify fulfillment state onto the local lifecycle.
// Cancellation wins over any fulfillment value. at_post_office is never
// produced here: Shopify has no concept of it, only operators set it.
func deriveOrderStatus(o *shopify.Order) models.OrderStatus {
	switch {
	case o.CancelledAt != nil:
		return models.OrderStatusCancelled
	case o.FulfillmentStatus == "fulfilled":
		return models.OrderStatusDelivered
	case o.FulfillmentStatus == "partial":
		return models.OrderStatusShipped
	default:
		return models.OrderStatusUnfulfilled
	}
}

// SyncOrders pulls recent orders from Shopify and upserts them by external id.
// On update only fulfillment, address and tracking fields move; customer
// name/email, amount and date are immutable once recorded.
func (s *SyncService) SyncOrders(ctx context.Context, storeID uuid.UUID) (int, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrStoreNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	client := s.newClient(&store)
	orders, err := client.ListOrders(ctx, shopify.ListOrdersOptions{
		Status:       "any",
		Limit:        syncPageLimit,
		CreatedAtMin: time.Now().AddDate(0, 0, -s.cfg.Sync.OrderLookbackDays),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		o := &orders[i]

		address := shopify.ShippingAddress{}
		if o.ShippingAddress != nil {
			address = *o.ShippingAddress
		}

		// Sync-time validity is a presence check on the four address
		// subfields, stricter and simpler than the heuristic validator.
		addressValid := address.Address1 != "" && address.City != "" &&
			address.Zip != "" && address.CountryCode != ""

		amount, err := decimal.NewFromString(o.TotalPrice)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id":    o.ID,
				"total_price": o.TotalPrice,
			}).Warn("Unparseable order total, storing zero")
			amount = decimal.Zero
		}

		customerName := ""
		customerEmail := o.Email
		if o.Customer != nil {
			customerName = strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
			if o.Customer.Email != "" {
				customerEmail = o.Customer.Email
			}
		}

		product := "Unknown Product"
		if len(o.LineItems) > 0 {
			product = o.LineItems[0].Title
		}

		var tracking shopify.Fulfillment
		if len(o.Fulfillments) > 0 {
			tracking = o.Fulfillments[0]
		}

		record := models.Order{
			StoreID:        store.ID,
			ShopifyID:      strconv.FormatInt(o.ID, 10),
			OrderNumber:    fmt.Sprintf("#%d", o.OrderNumber),
			CustomerName:   customerName,
			CustomerEmail:  customerEmail,
			Product:        product,
			Amount:         amount,
			Currency:       o.Currency,
			Status:         deriveOrderStatus(o),
			Date:           o.CreatedAt,
			Address:        joinAddressLines(address.Address1, address.Address2),
			City:           address.City,
			Zip:            address.Zip,
			Country:        address.CountryCode,
			AddressValid:   addressValid,
			TrackingNumber: tracking.TrackingNumber,
			TrackingURL:    tracking.TrackingURL,
			Carrier:        tracking.TrackingCompany,
		}

		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "address", "city", "zip", "country", "address_valid",
				"tracking_number", "tracking_url", "carrier", "updated_at",
			}),
		}).Create(&record).Error
		if err != nil {
			return 0, fmt.Errorf("failed to upsert order %s: %w", record.OrderNumber, err)
		}
	}

	return len(orders), nil
}

func joinAddressLines(lines ...string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, ", ")
}

// SyncProducts pulls products from Shopify and upserts them by external id.
// Products without a purchasable variant are skipped entirely rather than
// failing the sync.
func (s *SyncService) SyncProducts(ctx context.Context, storeID uuid.UUID) (int, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrStoreNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	client := s.newClient(&store)
	products, err := client.ListProducts(ctx, syncPageLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}

	for i := range products {
		p := &products[i]
		if len(p.Variants) == 0 {
			logrus.WithField("product_id", p.ID).Debug("Skipping product without variants")
			continue
		}
		variant := p.Variants[0]

		price, err := decimal.NewFromString(variant.Price)
		if err != nil {
			price = decimal.Zero
		}

		imageURL := ""
		if p.Image != nil {
			imageURL = p.Image.Src
		}

		record := models.Product{
			StoreID:   store.ID,
			ShopifyID: strconv.FormatInt(p.ID, 10),
			Name:      p.Title,
			SKU:       variant.SKU,
			Price:     price,
			Stock:     variant.InventoryQuantity,
			InStock:   variant.InventoryQuantity > 0,
			ImageURL:  imageURL,
		}

		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "price", "stock", "in_stock", "image_url", "sku", "updated_at",
			}),
		}).Create(&record).Error
		if err != nil {
			return 0, fmt.Errorf("failed to upsert product %s: %w", p.Title, err)
		}
	}

	return len(products), nil
}

// UpdateProductStock pushes a local in/out-of-stock toggle back to Shopify's
// inventory level for the product's first location, then updates the local
// row. This is the only local→external write in the system.
func (s *SyncService) UpdateProductStock(ctx context.Context, productID uuid.UUID, inStock bool) error {
	var product models.Product
	if err := s.db.Preload("Store").First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	shopifyID, err := strconv.ParseInt(product.ShopifyID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid shopify product id %q: %w", product.ShopifyID, err)
	}

	client := s.newClient(&product.Store)
	remote, err := client.GetProduct(ctx, shopifyID)
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	if len(remote.Variants) > 0 && remote.Variants[0].InventoryItemID != 0 {
		itemID := remote.Variants[0].InventoryItemID

		levels, err := client.ListInventoryLevels(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to list inventory levels: %w", err)
		}

		if len(levels) > 0 {
			available := 0
			if inStock {
				available = product.Stock
				if available <= 0 {
					available = 1
				}
			}
			if err := client.SetInventoryLevel(ctx, itemID, levels[0].LocationID, available); err != nil {
				return fmt.Errorf("failed to set inventory level: %w", err)
			}
		}
	}

	if err := s.db.Model(&product).Update("in_stock", inStock).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Sync runs the whole pipeline in a fixed order so later stages see freshly
// reconciled data: orders, products, address check, address emails, sales
// velocity, profit recompute. A failing step aborts the rest and surfaces the
// error; committed upserts from earlier steps stay in place (each step is
// idempotent, so retrying the whole sync converges).
func (s *SyncService) Sync(ctx context.Context, storeID uuid.UUID) (*SyncSummary, error) {
	summary := &SyncSummary{}

	orderCount, err := s.SyncOrders(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("order sync failed: %w", err)
	}
	summary.Orders = orderCount

	productCount, err := s.SyncProducts(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("product sync failed: %w", err)
	}
	summary.Products = productCount

	flagged, err := s.addressService.CheckAddresses(storeID)
	if err != nil {
		return nil, fmt.Errorf("address check failed: %w", err)
	}
	summary.FlaggedAddresses = len(flagged)

	sent, err := s.addressService.AutoSendAddressEmails(storeID)
	if err != nil {
		return nil, fmt.Errorf("address emails failed: %w", err)
	}
	summary.EmailsSent = sent

	if err := s.forecastService.UpdateSalesVelocity(storeID); err != nil {
		return nil, fmt.Errorf("velocity update failed: %w", err)
	}

	if _, err := s.profitService.CalculateRecentProfits(storeID); err != nil {
		return nil, fmt.Errorf("profit recompute failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"store_id": storeID,
		"orders":   summary.Orders,
		"products": summary.Products,
		"flagged":  summary.FlaggedAddresses,
		"emails":   summary.EmailsSent,
	}).Info("Sync completed")

	return summary, nil
}
