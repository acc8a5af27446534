// internal/services/profit_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopdash/backend/internal/models"
)

// Statuses whose orders count as revenue. Unfulfilled money isn't earned yet
// and cancelled orders never were.
var revenueStatuses = []models.OrderStatus{
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusAtPostOffice,
}

var (
	defaultCostRatio       = decimal.NewFromFloat(0.30)
	defaultShippingPerUnit = decimal.NewFromFloat(4.50)
)

type ProfitService struct {
	db *gorm.DB
}

func NewProfitService(db *gorm.DB) *ProfitService {
	return &ProfitService{db: db}
}

// CalculateMonthlyProfit recomputes the P&L entry for one calendar month
// ("YYYY-MM"). Revenue and profit are always rederived; the cost fields are
// preserved when an entry already exists (operator overrides win) and
// synthesized from product COGS ratios otherwise.
func (s *ProfitService) CalculateMonthlyProfit(storeID uuid.UUID, month string) (*models.ProfitEntry, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, 0)

	var orders []models.Order
	err = s.db.Where("store_id = ? AND date >= ? AND date < ? AND status IN ?",
		storeID, start, end, revenueStatuses).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	revenue := decimal.Zero
	for i := range orders {
		revenue = revenue.Add(orders[i].Amount)
	}

	var existing models.ProfitEntry
	found := true
	err = s.db.Where("store_id = ? AND month = ?", storeID, month).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		found = false
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	entry := models.ProfitEntry{
		StoreID: storeID,
		Month:   month,
		Revenue: revenue,
	}
	if found {
		entry.Costs = existing.Costs
		entry.AdSpend = existing.AdSpend
		entry.Shipping = existing.Shipping
		entry.OtherCosts = existing.OtherCosts
	} else {
		ratio, err := s.averageCostRatio(storeID)
		if err != nil {
			return nil, err
		}
		entry.Costs = revenue.Mul(ratio).Round(2)
		entry.AdSpend = decimal.Zero
		entry.Shipping = defaultShippingPerUnit.Mul(decimal.NewFromInt(int64(len(orders))))
		entry.OtherCosts = decimal.Zero
	}
	entry.Profit = entry.Revenue.Sub(entry.Costs).Sub(entry.AdSpend).Sub(entry.Shipping).Sub(entry.OtherCosts)

	// Single upsert keyed on (store_id, month): on conflict only the derived
	// columns move, the operator-owned cost fields stay untouched.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"revenue":    entry.Revenue,
			"profit":     entry.Profit,
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profit entry: %w", err)
	}

	var saved models.ProfitEntry
	if err := s.db.Where("store_id = ? AND month = ?", storeID, month).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}

// averageCostRatio estimates COGS as the mean cost/price ratio across the
// store's products, falling back to 30% when the store has no products.
// A zero price divides by 1 instead.
func (s *ProfitService) averageCostRatio(storeID uuid.UUID) (decimal.Decimal, error) {
	var products []models.Product
	if err := s.db.Where("store_id = ?", storeID).Find(&products).Error; err != nil {
		return decimal.Zero, fmt.Errorf("database error: %w", err)
	}

	if len(products) == 0 {
		return defaultCostRatio, nil
	}

	sum := decimal.Zero
	for i := range products {
		price := products[i].Price
		if price.IsZero() {
			price = decimal.NewFromInt(1)
		}
		sum = sum.Add(products[i].Cost.Div(price))
	}
	return sum.Div(decimal.NewFromInt(int64(len(products)))), nil
}

// CalculateRecentProfits recomputes the trailing six calendar months (current
// plus five prior), oldest first.
func (s *ProfitService) CalculateRecentProfits(storeID uuid.UUID) ([]models.ProfitEntry, error) {
	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	entries := make([]models.ProfitEntry, 0, 6)
	for i := 5; i >= 0; i-- {
		month := currentMonth.AddDate(0, -i, 0).Format("2006-01")
		entry, err := s.CalculateMonthlyProfit(storeID, month)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// ListEntries returns all profit entries for the store, oldest month first.
func (s *ProfitService) ListEntries(storeID uuid.UUID) ([]models.ProfitEntry, error) {
	var entries []models.ProfitEntry
	err := s.db.Where("store_id = ?", storeID).Order("month ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entries, nil
}

type UpdateProfitEntryRequest struct {
	Costs      *decimal.Decimal `json:"costs,omitempty"`
	AdSpend    *decimal.Decimal `json:"ad_spend,omitempty"`
	Shipping   *decimal.Decimal `json:"shipping,omitempty"`
	OtherCosts *decimal.Decimal `json:"other_costs,omitempty"`
}

// UpdateEntry applies operator overrides to the cost fields and recomputes
// profit from the stored revenue. Revenue itself is never writable here.
func (s *ProfitService) UpdateEntry(entryID uuid.UUID, req *UpdateProfitEntryRequest) (*models.ProfitEntry, error) {
	var entry models.ProfitEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Costs != nil {
		entry.Costs = *req.Costs
	}
	if req.AdSpend != nil {
		entry.AdSpend = *req.AdSpend
	}
	if req.Shipping != nil {
		entry.Shipping = *req.Shipping
	}
	if req.OtherCosts != nil {
		entry.OtherCosts = *req.OtherCosts
	}
	entry.Profit = entry.Revenue.Sub(entry.Costs).Sub(entry.AdSpend).Sub(entry.Shipping).Sub(entry.OtherCosts)

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to update profit entry: %w", err)
	}
	return &entry, nil
}
