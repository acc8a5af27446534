// internal/services/helpers_test.go
package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/shopify"
)

// setupTestDB opens a fresh in-memory database per test. The pool is pinned
// to a single connection because every sqlite :memory: connection is its own
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.Order{},
		&models.TrackingEvent{},
		&models.Email{},
		&models.EmailFlow{},
		&models.TrackingConfig{},
		&models.ProfitEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestStore(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()

	store := &models.Store{
		ShopifyURL:  fmt.Sprintf("%s.myshopify.com", uuid.NewString()[:8]),
		AccessToken: "shpat_test",
		Name:        "Test Store",
		Email:       "owner@example.com",
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// orderFixture carries only the fields a test cares about; createTestOrder
// fills in sane defaults for the rest.
type orderFixture struct {
	Status         models.OrderStatus
	CustomerName   string
	CustomerEmail  string
	Product        string
	Amount         string
	Date           time.Time
	Address        string
	City           string
	Zip            string
	Country        string
	AddressValid   *bool
	TrackingNumber string
}

func createTestOrder(t *testing.T, db *gorm.DB, storeID uuid.UUID, f orderFixture) *models.Order {
	t.Helper()

	if f.Status == "" {
		f.Status = models.OrderStatusUnfulfilled
	}
	if f.CustomerName == "" {
		f.CustomerName = "Jane Doe"
	}
	if f.CustomerEmail == "" {
		f.CustomerEmail = "jane@example.com"
	}
	if f.Product == "" {
		f.Product = "Test Product"
	}
	if f.Amount == "" {
		f.Amount = "49.99"
	}
	if f.Date.IsZero() {
		f.Date = time.Now().AddDate(0, 0, -1)
	}
	if f.Address == "" {
		f.Address = "Keizersgracht 123"
	}
	if f.City == "" {
		f.City = "Amsterdam"
	}
	if f.Zip == "" {
		f.Zip = "1015 CJ"
	}
	if f.Country == "" {
		f.Country = "NL"
	}
	addressValid := true
	if f.AddressValid != nil {
		addressValid = *f.AddressValid
	}

	order := &models.Order{
		StoreID:        storeID,
		ShopifyID:      uuid.NewString(),
		OrderNumber:    fmt.Sprintf("#%d", time.Now().UnixNano()%100000),
		CustomerName:   f.CustomerName,
		CustomerEmail:  f.CustomerEmail,
		Product:        f.Product,
		Amount:         decimal.RequireFromString(f.Amount),
		Currency:       "EUR",
		Status:         f.Status,
		Date:           f.Date,
		Address:        f.Address,
		City:           f.City,
		Zip:            f.Zip,
		Country:        f.Country,
		AddressValid:   addressValid,
		TrackingNumber: f.TrackingNumber,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

func createTestProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string, price, cost string, stock int, salesPerDay float64) *models.Product {
	t.Helper()

	product := &models.Product{
		StoreID:     storeID,
		ShopifyID:   uuid.NewString(),
		Name:        name,
		SKU:         "SKU-" + name,
		Price:       decimal.RequireFromString(price),
		Cost:        decimal.RequireFromString(cost),
		Stock:       stock,
		SalesPerDay: salesPerDay,
		InStock:     stock > 0,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// fakeMailer records sends in memory and can be told to fail.
type fakeMailer struct {
	sent    []fakeMail
	failErr error
}

type fakeMail struct {
	To      string
	Subject string
	HTML    string
}

func (m *fakeMailer) Send(to, subject, html string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, fakeMail{To: to, Subject: subject, HTML: html})
	return nil
}

// fakeShopifyAPI serves canned responses and records inventory writes.
type fakeShopifyAPI struct {
	shop            *shopify.Shop
	orders          []shopify.Order
	products        []shopify.Product
	productsByID    map[int64]*shopify.Product
	inventoryLevels []shopify.InventoryLevel

	listOrdersErr error

	inventoryWrites []inventoryWrite
}

type inventoryWrite struct {
	InventoryItemID int64
	LocationID      int64
	Available       int
}

func (f *fakeShopifyAPI) GetShop(ctx context.Context) (*shopify.Shop, error) {
	if f.shop == nil {
		return &shopify.Shop{Name: "Fake Shop", Email: "fake@example.com"}, nil
	}
	return f.shop, nil
}

func (f *fakeShopifyAPI) ListOrders(ctx context.Context, opts shopify.ListOrdersOptions) ([]shopify.Order, error) {
	if f.listOrdersErr != nil {
		return nil, f.listOrdersErr
	}
	return f.orders, nil
}

func (f *fakeShopifyAPI) ListProducts(ctx context.Context, limit int) ([]shopify.Product, error) {
	return f.products, nil
}

func (f *fakeShopifyAPI) GetProduct(ctx context.Context, id int64) (*shopify.Product, error) {
	if p, ok := f.productsByID[id]; ok {
		return p, nil
	}
	return nil, &shopify.APIError{StatusCode: 404, Body: "product not found"}
}

func (f *fakeShopifyAPI) ListInventoryLevels(ctx context.Context, inventoryItemID int64) ([]shopify.InventoryLevel, error) {
	return f.inventoryLevels, nil
}

func (f *fakeShopifyAPI) SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error {
	f.inventoryWrites = append(f.inventoryWrites, inventoryWrite{
		InventoryItemID: inventoryItemID,
		LocationID:      locationID,
		Available:       available,
	})
	return nil
}
