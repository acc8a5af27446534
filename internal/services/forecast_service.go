// internal/services/forecast_service.go
package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

// velocityWindowDays is the trailing window for demand estimation. The divisor
// is flat: a product observed for 3 days still divides by 30.
const velocityWindowDays = 30

type ForecastService struct {
	db *gorm.DB
}

// StockForecast is a product augmented with its depletion outlook. It is a
// read-only projection; nothing here is persisted.
type StockForecast struct {
	models.Product
	// DaysUntilOut is nil when the product has no measured velocity and
	// therefore never runs out.
	DaysUntilOut *int                `json:"days_until_out"`
	Urgency      models.StockUrgency `json:"urgency"`
	ReorderQty   int                 `json:"reorder_qty"`
}

func NewForecastService(db *gorm.DB) *ForecastService {
	return &ForecastService{db: db}
}

// UpdateSalesVelocity recomputes salesPerDay for every product of the store
// from orders in the trailing 30-day window. Cancelled orders don't count;
// products with no matching orders are reset to zero.
func (s *ForecastService) UpdateSalesVelocity(storeID uuid.UUID) error {
	var products []models.Product
	if err := s.db.Where("store_id = ?", storeID).Find(&products).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	windowStart := time.Now().AddDate(0, 0, -velocityWindowDays)

	var orders []models.Order
	err := s.db.Where("store_id = ? AND date >= ? AND status IN ?",
		storeID, windowStart, []models.OrderStatus{
			models.OrderStatusShipped,
			models.OrderStatusDelivered,
			models.OrderStatusAtPostOffice,
			models.OrderStatusUnfulfilled,
		}).
		Find(&orders).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	// Orders reference products by denormalized name, not foreign key.
	salesByProduct := make(map[string]int)
	for i := range orders {
		salesByProduct[orders[i].Product]++
	}

	for i := range products {
		salesPerDay := float64(salesByProduct[products[i].Name]) / velocityWindowDays
		if err := s.db.Model(&products[i]).Update("sales_per_day", salesPerDay).Error; err != nil {
			return fmt.Errorf("failed to update velocity for %s: %w", products[i].Name, err)
		}
	}

	return nil
}

// GetStockForecast projects days-until-stockout for every in-stock product,
// ordered by stock ascending so the most urgent rows come first.
func (s *ForecastService) GetStockForecast(storeID uuid.UUID) ([]StockForecast, error) {
	var products []models.Product
	err := s.db.Where("store_id = ? AND in_stock = ?", storeID, true).
		Order("stock ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	forecasts := make([]StockForecast, 0, len(products))
	for i := range products {
		p := products[i]

		f := StockForecast{
			Product:    p,
			Urgency:    models.StockUrgencyOK,
			ReorderQty: int(math.Ceil(p.SalesPerDay * velocityWindowDays)),
		}

		if p.SalesPerDay > 0 {
			days := int(math.Floor(float64(p.Stock) / p.SalesPerDay))
			f.DaysUntilOut = &days

			switch {
			case days <= 3:
				f.Urgency = models.StockUrgencyCritical
			case days <= 7:
				f.Urgency = models.StockUrgencyWarning
			case days <= 14:
				f.Urgency = models.StockUrgencyAttention
			}
		}

		forecasts = append(forecasts, f)
	}

	return forecasts, nil
}
