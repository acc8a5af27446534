// internal/services/order_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *models.Store
	mailer  *fakeMailer
	service *OrderService
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.store = createTestStore(suite.T(), suite.db)
	suite.mailer = &fakeMailer{}

	emailService := NewEmailService(suite.db, suite.mailer)
	templates := EmailTemplates{TrackingBaseURL: "http://localhost:3000/track"}
	suite.service = NewOrderService(suite.db, emailService, templates)
}

func (suite *OrderServiceTestSuite) TestListOrdersFiltersByStatus() {
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{Status: models.OrderStatusShipped})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{Status: models.OrderStatusUnfulfilled})

	params := OrderSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Status:           models.OrderStatusShipped,
	}
	orders, total, err := suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(orders, 1)
	suite.Equal(models.OrderStatusShipped, orders[0].Status)

	params.Status = "all"
	_, total, err = suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.EqualValues(2, total)
}

func (suite *OrderServiceTestSuite) TestListOrdersSearchesCustomerAndProduct() {
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		CustomerName: "Anna Visser", Product: "Ceramic Mug",
	})
	createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		CustomerName: "Bob Smith", Product: "Wool Scarf",
	})

	params := OrderSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "anna"},
	}
	orders, total, err := suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Equal("Anna Visser", orders[0].CustomerName)

	params.Search = "scarf"
	orders, _, err = suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("Wool Scarf", orders[0].Product)
}

func (suite *OrderServiceTestSuite) TestListOrdersPaginatesNewestFirst() {
	for i := 0; i < 5; i++ {
		createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
			Date: time.Now().AddDate(0, 0, -i),
		})
	}

	params := OrderSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 2},
	}
	orders, total, err := suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.EqualValues(5, total)
	suite.Require().Len(orders, 2)
	suite.True(orders[0].Date.After(orders[1].Date))

	params.Page = 3
	orders, _, err = suite.service.ListOrders(suite.store.ID, params)
	suite.NoError(err)
	suite.Len(orders, 1)
}

func (suite *OrderServiceTestSuite) TestUpdateStatusSendsMatchingEmail() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{
		TrackingNumber: "3STRACK0001",
	})

	updated, err := suite.service.UpdateStatus(order.ID, models.OrderStatusShipped)
	suite.NoError(err)
	suite.Equal(models.OrderStatusShipped, updated.Status)

	suite.Require().Len(suite.mailer.sent, 1)
	suite.Contains(suite.mailer.sent[0].Subject, "on its way")

	var email models.Email
	suite.NoError(suite.db.First(&email, "order_id = ?", order.ID).Error)
	suite.Equal(models.EmailTypeTrackingUpdate, email.Type)
}

func (suite *OrderServiceTestSuite) TestUpdateStatusPostOfficeEmail() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{})

	_, err := suite.service.UpdateStatus(order.ID, models.OrderStatusAtPostOffice)
	suite.NoError(err)

	var email models.Email
	suite.NoError(suite.db.First(&email, "order_id = ?", order.ID).Error)
	suite.Equal(models.EmailTypePostOffice, email.Type)
}

func (suite *OrderServiceTestSuite) TestUpdateStatusCancelledSendsNothing() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{})

	_, err := suite.service.UpdateStatus(order.ID, models.OrderStatusCancelled)
	suite.NoError(err)
	suite.Empty(suite.mailer.sent)
}

func (suite *OrderServiceTestSuite) TestUpdateStatusSurvivesEmailFailure() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{})
	suite.mailer.failErr = errors.New("connection refused")

	updated, err := suite.service.UpdateStatus(order.ID, models.OrderStatusDelivered)
	suite.NoError(err)
	suite.Equal(models.OrderStatusDelivered, updated.Status)

	var stored models.Order
	suite.NoError(suite.db.First(&stored, "id = ?", order.ID).Error)
	suite.Equal(models.OrderStatusDelivered, stored.Status)
}

func (suite *OrderServiceTestSuite) TestSendManualEmail() {
	order := createTestOrder(suite.T(), suite.db, suite.store.ID, orderFixture{})

	email, err := suite.service.SendManualEmail(order.ID, models.EmailTypeWrongAddress)
	suite.NoError(err)
	suite.Equal(models.EmailTypeWrongAddress, email.Type)
	suite.Len(suite.mailer.sent, 1)

	// Only the two manual types are allowed.
	_, err = suite.service.SendManualEmail(order.ID, models.EmailTypeTrackingUpdate)
	suite.Error(err)
}

func (suite *OrderServiceTestSuite) TestGetOrderNotFound() {
	_, err := suite.service.GetOrder(uuid.New())
	suite.ErrorIs(err, ErrOrderNotFound)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
