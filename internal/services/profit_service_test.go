// internal/services/profit_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

type ProfitServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *models.Store
	service *ProfitService
}

func (suite *ProfitServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.store = createTestStore(suite.T(), suite.db)
	suite.service = NewProfitService(suite.db)
}

func (suite *ProfitServiceTestSuite) TestRevenueCountsOnlyFulfilledStatuses() {
	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "50.00", Date: month,
	})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusDelivered, Amount: "30.00", Date: month.AddDate(0, 0, 5),
	})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusUnfulfilled, Amount: "500.00", Date: month,
	})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusCancelled, Amount: "500.00", Date: month,
	})
	// Wrong month entirely.
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "500.00", Date: month.AddDate(0, 1, 0),
	})

	entry, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)
	suite.True(entry.Revenue.Equal(decimal.RequireFromString("80.00")),
		"revenue = %s", entry.Revenue)
}

func (suite *ProfitServiceTestSuite) TestFirstRunSynthesizesCosts() {
	// Two products with cost ratios 0.20 and 0.40, average 0.30.
	createTestProduct(suite.T(), suite.db, suite.store.ID, "Cheap", "10.00", "2.00", 10, 0)
	createTestProduct(suite.T(), suite.db, suite.store.ID, "Rich", "10.00", "4.00", 10, 0)

	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "100.00", Date: month,
	})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusDelivered, Amount: "100.00", Date: month,
	})

	entry, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)

	suite.True(entry.Revenue.Equal(decimal.RequireFromString("200.00")))
	suite.True(entry.Costs.Equal(decimal.RequireFromString("60.00")), "costs = %s", entry.Costs)
	suite.True(entry.AdSpend.IsZero())
	// 4.50 flat shipping per order.
	suite.True(entry.Shipping.Equal(decimal.RequireFromString("9.00")), "shipping = %s", entry.Shipping)
	suite.True(entry.OtherCosts.IsZero())
	// 200 - 60 - 0 - 9 - 0
	suite.True(entry.Profit.Equal(decimal.RequireFromString("131.00")), "profit = %s", entry.Profit)
}

func (suite *ProfitServiceTestSuite) TestDefaultCostRatioWithoutProducts() {
	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "100.00", Date: month,
	})

	entry, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)
	suite.True(entry.Costs.Equal(decimal.RequireFromString("30.00")), "costs = %s", entry.Costs)
}

func (suite *ProfitServiceTestSuite) TestRecomputePreservesOperatorOverrides() {
	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "100.00", Date: month,
	})

	entry, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)

	adSpend := decimal.RequireFromString("25.00")
	entry, err = suite.service.UpdateEntry(entry.ID, &UpdateProfitEntryRequest{AdSpend: &adSpend})
	suite.NoError(err)
	suite.True(entry.AdSpend.Equal(adSpend))

	// A later order lands in the month, then the sync recomputes.
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusDelivered, Amount: "50.00", Date: month,
	})

	entry, err = suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)
	suite.True(entry.Revenue.Equal(decimal.RequireFromString("150.00")), "revenue = %s", entry.Revenue)
	// Overrides survive the recompute; profit is rederived from them.
	suite.True(entry.AdSpend.Equal(adSpend), "ad_spend = %s", entry.AdSpend)
	expected := entry.Revenue.Sub(entry.Costs).Sub(entry.AdSpend).Sub(entry.Shipping).Sub(entry.OtherCosts)
	suite.True(entry.Profit.Equal(expected), "profit = %s", entry.Profit)
}

func (suite *ProfitServiceTestSuite) TestRecomputeIsIdempotent() {
	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "100.00", Date: month,
	})

	first, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)
	second, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)

	suite.Equal(first.ID, second.ID)
	suite.True(first.Revenue.Equal(second.Revenue))
	suite.True(first.Profit.Equal(second.Profit))

	var count int64
	suite.NoError(suite.db.Model(&models.ProfitEntry{}).
		Where("store_id = ?", suite.store.ID).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *ProfitServiceTestSuite) TestInvalidMonthRejected() {
	_, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "February 2026")
	suite.Error(err)
}

func (suite *ProfitServiceTestSuite) TestCalculateRecentProfitsCoversSixMonths() {
	entries, err := suite.service.CalculateRecentProfits(suite.store.ID)
	suite.NoError(err)
	suite.Require().Len(entries, 6)

	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i, entry := range entries {
		expected := currentMonth.AddDate(0, i-5, 0).Format("2006-01")
		suite.Equal(expected, entry.Month)
	}
}

func (suite *ProfitServiceTestSuite) TestUpdateEntryRecomputesProfit() {
	month := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status: models.OrderStatusShipped, Amount: "100.00", Date: month,
	})

	entry, err := suite.service.CalculateMonthlyProfit(suite.store.ID, "2026-02")
	suite.NoError(err)

	costs := decimal.RequireFromString("10.00")
	shipping := decimal.RequireFromString("5.00")
	updated, err := suite.service.UpdateEntry(entry.ID, &UpdateProfitEntryRequest{
		Costs:    &costs,
		Shipping: &shipping,
	})
	suite.NoError(err)
	suite.True(updated.Profit.Equal(decimal.RequireFromString("85.00")), "profit = %s", updated.Profit)
}

func (suite *ProfitServiceTestSuite) TestUpdateEntryNotFound() {
	costs := decimal.RequireFromString("10.00")
	_, err := suite.service.UpdateEntry(suite.store.ID, &UpdateProfitEntryRequest{Costs: &costs})
	suite.ErrorIs(err, ErrEntryNotFound)
}

func TestProfitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitServiceTestSuite))
}
