// internal/database/seed.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

// SeedDemoData creates a demo store with sample products, orders, tracking
// events, a tracking page config and profit history, so the dashboard works
// before a real Shopify store is connected. Safe to run repeatedly.
func SeedDemoData(db *gorm.DB) error {
	log.Println("Seeding demo data...")

	var store models.Store
	err := db.Where("shopify_url = ?", "demo-store.myshopify.com").First(&store).Error
	if err == gorm.ErrRecordNotFound {
		store = models.Store{
			ShopifyURL:  "demo-store.myshopify.com",
			AccessToken: "demo-token",
			Name:        "Demo Store",
			Email:       "owner@demo-store.com",
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to create demo store: %w", err)
		}
	} else if err != nil {
		return err
	}

	products := []models.Product{
		{ShopifyID: "1001", Name: "Wireless Earbuds Pro", SKU: "WEP-001", Price: decimal.NewFromFloat(89.99), Cost: decimal.NewFromFloat(22.00), Stock: 47, SalesPerDay: 3.2, InStock: true},
		{ShopifyID: "1002", Name: "Phone Case Ultra", SKU: "PCU-002", Price: decimal.NewFromFloat(24.99), Cost: decimal.NewFromFloat(4.50), Stock: 182, SalesPerDay: 8.1, InStock: true},
		{ShopifyID: "1003", Name: "USB-C Hub 7-in-1", SKU: "UCH-003", Price: decimal.NewFromFloat(45.00), Cost: decimal.NewFromFloat(12.00), Stock: 8, SalesPerDay: 2.4, InStock: true},
		{ShopifyID: "1004", Name: "LED Desk Lamp", SKU: "LDL-004", Price: decimal.NewFromFloat(67.50), Cost: decimal.NewFromFloat(18.00), Stock: 0, SalesPerDay: 1.8, InStock: false},
		{ShopifyID: "1005", Name: "Bluetooth Speaker Mini", SKU: "BSM-005", Price: decimal.NewFromFloat(39.99), Cost: decimal.NewFromFloat(9.50), Stock: 93, SalesPerDay: 5.0, InStock: true},
		{ShopifyID: "1006", Name: "Laptop Stand Ergonomic", SKU: "LSE-006", Price: decimal.NewFromFloat(54.00), Cost: decimal.NewFromFloat(15.00), Stock: 31, SalesPerDay: 1.5, InStock: true},
		{ShopifyID: "1007", Name: "Wireless Charger Pad", SKU: "WCP-007", Price: decimal.NewFromFloat(29.99), Cost: decimal.NewFromFloat(6.00), Stock: 3, SalesPerDay: 4.2, InStock: true},
		{ShopifyID: "1008", Name: "Screen Protector 3-Pack", SKU: "SP3-008", Price: decimal.NewFromFloat(14.99), Cost: decimal.NewFromFloat(1.80), Stock: 412, SalesPerDay: 12.0, InStock: true},
	}
	for _, p := range products {
		p.StoreID = store.ID
		var count int64
		db.Model(&models.Product{}).Where("shopify_id = ?", p.ShopifyID).Count(&count)
		if count == 0 {
			if err := db.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to create demo product %s: %w", p.SKU, err)
			}
		}
	}

	orders := []models.Order{
		{ShopifyID: "4012", OrderNumber: "#4012", CustomerName: "Emma van Dijk", CustomerEmail: "emma@email.com", Product: "Wireless Earbuds Pro", Amount: decimal.NewFromFloat(89.99), Status: models.OrderStatusUnfulfilled, Date: date(2026, 2, 17), Address: "Kerkstraat 42", City: "Amsterdam", Zip: "1017 GH", Country: "NL", AddressValid: true},
		{ShopifyID: "4011", OrderNumber: "#4011", CustomerName: "Lucas de Vries", CustomerEmail: "lucas@email.com", Product: "Phone Case Ultra", Amount: decimal.NewFromFloat(24.99), Status: models.OrderStatusUnfulfilled, Date: date(2026, 2, 17), Address: "Hoofdweg 1A", City: "", Zip: "INVALID", Country: "NL", AddressValid: false},
		{ShopifyID: "4010", OrderNumber: "#4010", CustomerName: "Sophie Jansen", CustomerEmail: "sophie@email.com", Product: "USB-C Hub 7-in-1", Amount: decimal.NewFromFloat(45.00), Status: models.OrderStatusShipped, Date: date(2026, 2, 16), Address: "Bergstraat 15", City: "Arnhem", Zip: "6811 AB", Country: "NL", AddressValid: true, TrackingNumber: "NL4829104821", Carrier: "PostNL"},
		{ShopifyID: "4009", OrderNumber: "#4009", CustomerName: "Noah Bakker", CustomerEmail: "noah@email.com", Product: "LED Desk Lamp", Amount: decimal.NewFromFloat(67.50), Status: models.OrderStatusAtPostOffice, Date: date(2026, 2, 15), Address: "Velperplein 8", City: "Arnhem", Zip: "6811 AG", Country: "NL", AddressValid: true, TrackingNumber: "NL9281048211", Carrier: "PostNL"},
		{ShopifyID: "4008", OrderNumber: "#4008", CustomerName: "Mila Smit", CustomerEmail: "mila@email.com", Product: "Bluetooth Speaker Mini", Amount: decimal.NewFromFloat(39.99), Status: models.OrderStatusDelivered, Date: date(2026, 2, 14), Address: "Rijnkade 30", City: "Arnhem", Zip: "6811 HA", Country: "NL", AddressValid: true, TrackingNumber: "NL1029384756", Carrier: "PostNL"},
		{ShopifyID: "4007", OrderNumber: "#4007", CustomerName: "Daan Peters", CustomerEmail: "daan@email.com", Product: "Wireless Earbuds Pro", Amount: decimal.NewFromFloat(89.99), Status: models.OrderStatusUnfulfilled, Date: date(2026, 2, 14), Address: "Fakestreet 999", City: "", Zip: "0000 XX", Country: "NL", AddressValid: false},
	}
	for _, o := range orders {
		o.StoreID = store.ID
		var count int64
		db.Model(&models.Order{}).Where("shopify_id = ?", o.ShopifyID).Count(&count)
		if count == 0 {
			if err := db.Create(&o).Error; err != nil {
				return fmt.Errorf("failed to create demo order %s: %w", o.OrderNumber, err)
			}
		}
	}

	// Tracking events for the shipped order
	var shipped models.Order
	if err := db.Where("shopify_id = ?", "4010").First(&shipped).Error; err == nil {
		var eventCount int64
		db.Model(&models.TrackingEvent{}).Where("order_id = ?", shipped.ID).Count(&eventCount)
		if eventCount == 0 {
			events := []models.TrackingEvent{
				{OrderID: shipped.ID, Status: "shipped", Description: "Package shipped from warehouse", Location: "Rotterdam, NL", Timestamp: time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)},
				{OrderID: shipped.ID, Status: "in_transit", Description: "Package in transit to sorting center", Location: "Utrecht, NL", Timestamp: time.Date(2026, 2, 16, 14, 30, 0, 0, time.UTC)},
				{OrderID: shipped.ID, Status: "in_transit", Description: "Package arrived at local distribution", Location: "Arnhem, NL", Timestamp: time.Date(2026, 2, 17, 6, 0, 0, 0, time.UTC)},
			}
			if err := db.Create(&events).Error; err != nil {
				return fmt.Errorf("failed to create demo tracking events: %w", err)
			}
		}
	}

	// Tracking page config
	var configCount int64
	db.Model(&models.TrackingConfig{}).Where("store_id = ?", store.ID).Count(&configCount)
	if configCount == 0 {
		cfg := models.TrackingConfig{
			StoreID:  store.ID,
			Theme:    models.RawJSON(`{"primary":"#6366f1","accent":"#34d399","bg":"#0a0a16","text":"#e2e8f0","storeName":"Demo Store"}`),
			Sections: models.RawJSON(`[{"id":"s1","type":"announcement_bar","enabled":true,"settings":{},"blocks":[{"id":"b1","type":"text","settings":{"text":"Free shipping on all orders above €50!"}}]},{"id":"s2","type":"hero_banner","enabled":true,"settings":{},"blocks":[]},{"id":"s3","type":"tracking_timeline","enabled":true,"settings":{},"blocks":[]},{"id":"s4","type":"order_details","enabled":true,"settings":{},"blocks":[]},{"id":"s5","type":"product_recommendations","enabled":true,"settings":{},"blocks":[]},{"id":"s6","type":"support_contact","enabled":true,"settings":{},"blocks":[]}]`),
		}
		if err := db.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to create demo tracking config: %w", err)
		}
	}

	// Profit history
	profitMonths := []struct {
		month                             string
		revenue, costs, adSpend, shipping float64
	}{
		{"2025-09", 4280, 1420, 890, 320},
		{"2025-10", 5120, 1680, 1020, 410},
		{"2025-11", 8940, 2890, 1800, 720},
		{"2025-12", 12400, 4100, 2400, 980},
		{"2026-01", 6780, 2240, 1350, 540},
		{"2026-02", 4890, 1610, 980, 390},
	}
	for _, p := range profitMonths {
		var count int64
		db.Model(&models.ProfitEntry{}).Where("store_id = ? AND month = ?", store.ID, p.month).Count(&count)
		if count > 0 {
			continue
		}
		revenue := decimal.NewFromFloat(p.revenue)
		costs := decimal.NewFromFloat(p.costs)
		adSpend := decimal.NewFromFloat(p.adSpend)
		shipping := decimal.NewFromFloat(p.shipping)
		entry := models.ProfitEntry{
			StoreID:    store.ID,
			Month:      p.month,
			Revenue:    revenue,
			Costs:      costs,
			AdSpend:    adSpend,
			Shipping:   shipping,
			OtherCosts: decimal.Zero,
			Profit:     revenue.Sub(costs).Sub(adSpend).Sub(shipping),
		}
		if err := db.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create demo profit entry %s: %w", p.month, err)
		}
	}

	log.Println("Demo data seeding completed")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
