// internal/services/tracking_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

type TrackingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *models.Store
	service *TrackingService
}

func (suite *TrackingServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.store = createTestStore(suite.T(), suite.db)
	suite.service = NewTrackingService(suite.db)
}

func (suite *TrackingServiceTestSuite) TestResolveUnknownNumber() {
	_, err := suite.service.Resolve("3SNOSUCH")
	suite.ErrorIs(err, ErrTrackingNotFound)

	_, err = suite.service.Resolve("")
	suite.ErrorIs(err, ErrTrackingNotFound)
}

func (suite *TrackingServiceTestSuite) TestResolveExposesOnlyCustomerSafeFields() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		CustomerName:   "Anna Maria Visser",
		Status:         models.OrderStatusShipped,
		TrackingNumber: "3STRACK0001",
	})
	suite.NoError(suite.db.Model(order).Update("carrier", "PostNL").Error)

	page, err := suite.service.Resolve("3STRACK0001")
	suite.NoError(err)

	suite.Equal(order.OrderNumber, page.OrderNumber)
	// First name only, never the full name.
	suite.Equal("Anna", page.CustomerName)
	suite.Equal("PostNL", page.Carrier)
	suite.Equal(models.OrderStatusShipped, page.Status)
	suite.Equal(suite.store.Name, page.Page.StoreName)
}

func (suite *TrackingServiceTestSuite) TestResolveOrdersEventsNewestFirst() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		TrackingNumber: "3STRACK0002",
	})

	base := time.Now().Add(-72 * time.Hour)
	for i, desc := range []string{"Label created", "In transit", "Out for delivery"} {
		suite.Require().NoError(suite.db.Create(&models.TrackingEvent{
			OrderID:     order.ID,
			Status:      "in_transit",
			Description: desc,
			Timestamp:   base.Add(time.Duration(i) * 24 * time.Hour),
		}).Error)
	}

	page, err := suite.service.Resolve("3STRACK0002")
	suite.NoError(err)
	suite.Require().Len(page.Events, 3)
	suite.Equal("Out for delivery", page.Events[0].Description)
	suite.Equal("Label created", page.Events[2].Description)
}

func (suite *TrackingServiceTestSuite) TestEstimatedDeliveryFromLastEvent() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status:         models.OrderStatusShipped,
		TrackingNumber: "3STRACK0003",
	})

	lastMovement := time.Now().Add(-24 * time.Hour).UTC().Truncate(time.Second)
	suite.Require().NoError(suite.db.Create(&models.TrackingEvent{
		OrderID:   order.ID,
		Status:    "in_transit",
		Timestamp: lastMovement,
	}).Error)

	page, err := suite.service.Resolve("3STRACK0003")
	suite.NoError(err)
	suite.Require().NotNil(page.EstimatedDelivery)
	suite.WithinDuration(lastMovement.AddDate(0, 0, 3), *page.EstimatedDelivery, time.Second)
}

func (suite *TrackingServiceTestSuite) TestEstimatedDeliveryFallsBackToOrderDate() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status:         models.OrderStatusShipped,
		TrackingNumber: "3STRACK0004",
		Date:           time.Now().AddDate(0, 0, -1),
	})

	page, err := suite.service.Resolve("3STRACK0004")
	suite.NoError(err)
	suite.Require().NotNil(page.EstimatedDelivery)
	suite.WithinDuration(order.Date.AddDate(0, 0, 3), *page.EstimatedDelivery, time.Second)
}

func (suite *TrackingServiceTestSuite) TestEstimatedDeliveryNilOnceDelivered() {
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		Status:         models.OrderStatusDelivered,
		TrackingNumber: "3STRACK0005",
	})

	page, err := suite.service.Resolve("3STRACK0005")
	suite.NoError(err)
	suite.Nil(page.EstimatedDelivery)
}

func (suite *TrackingServiceTestSuite) TestResolveReadsNativeAndStringifiedConfig() {
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		TrackingNumber: "3STRACK0006",
	})

	// Native JSON document.
	suite.Require().NoError(suite.db.Create(&models.TrackingConfig{
		StoreID:  suite.store.ID,
		Theme:    models.RawJSON(`{"primary_color":"#1a1a2e"}`),
		Sections: models.RawJSON(`[{"id":"hero","type":"hero","enabled":true}]`),
	}).Error)

	page, err := suite.service.Resolve("3STRACK0006")
	suite.NoError(err)
	suite.Equal("#1a1a2e", page.Page.Theme["primary_color"])
	suite.Require().Len(page.Page.Sections, 1)
	suite.Equal("hero", page.Page.Sections[0].ID)
	suite.True(page.Page.Sections[0].Enabled)

	// Older rows stored the document as a JSON string; both shapes decode.
	suite.Require().NoError(suite.db.Model(&models.TrackingConfig{}).
		Where("store_id = ?", suite.store.ID).
		Update("theme", `"{\"primary_color\":\"#ff0000\"}"`).Error)

	page, err = suite.service.Resolve("3STRACK0006")
	suite.NoError(err)
	suite.Equal("#ff0000", page.Page.Theme["primary_color"])
}

func (suite *TrackingServiceTestSuite) TestGetConfigDefaultsWhenUnsaved() {
	cfg, err := suite.service.GetConfig(suite.store.ID)
	suite.NoError(err)
	suite.Equal(suite.store.ID, cfg.StoreID)
	suite.JSONEq(`{}`, string(cfg.Theme))
	suite.JSONEq(`[]`, string(cfg.Sections))
}

func (suite *TrackingServiceTestSuite) TestUpsertConfigKeepsOmittedFields() {
	css := "body { background: #fff; }"
	_, err := suite.service.UpsertConfig(suite.store.ID, &UpdateTrackingConfigRequest{
		Theme:     models.RawJSON(`{"primary_color":"#1a1a2e"}`),
		CustomCSS: &css,
	})
	suite.NoError(err)

	// Second save touches only the sections.
	saved, err := suite.service.UpsertConfig(suite.store.ID, &UpdateTrackingConfigRequest{
		Sections: models.RawJSON(`[{"id":"hero","type":"hero","enabled":true}]`),
	})
	suite.NoError(err)

	suite.JSONEq(`{"primary_color":"#1a1a2e"}`, string(saved.Theme))
	suite.Equal(css, saved.CustomCSS)
	suite.JSONEq(`[{"id":"hero","type":"hero","enabled":true}]`, string(saved.Sections))
}

func TestTrackingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingServiceTestSuite))
}
