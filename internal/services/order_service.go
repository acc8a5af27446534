// internal/services/order_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/utils"
)

type OrderService struct {
	db           *gorm.DB
	emailService *EmailService
	templates    EmailTemplates
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status models.OrderStatus
}

func NewOrderService(db *gorm.DB, emailService *EmailService, templates EmailTemplates) *OrderService {
	return &OrderService{
		db:           db,
		emailService: emailService,
		templates:    templates,
	}
}

func (s *OrderService) ListOrders(storeID uuid.UUID, params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("store_id = ?", storeID)

	if params.Status != "" && params.Status != "all" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE LOWER(?) OR order_number LIKE ? OR LOWER(product) LIKE LOWER(?)",
			pattern, params.Search+"%", pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	err := utils.ApplyPagination(query.Order("date DESC"), params.PaginationParams).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Store").First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// UpdateStatus applies a manual operator status change and sends the matching
// customer email. The email is fire-and-log: a transport failure must never
// roll back or block the status change that triggered it.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = newStatus

	var tmpl EmailTemplate
	var emailType models.EmailType
	switch newStatus {
	case models.OrderStatusShipped:
		tmpl = s.templates.Shipped(order, &order.Store)
		emailType = models.EmailTypeTrackingUpdate
	case models.OrderStatusAtPostOffice:
		tmpl = s.templates.PostOffice(order, &order.Store)
		emailType = models.EmailTypePostOffice
	case models.OrderStatusDelivered:
		tmpl = s.templates.Delivered(order, &order.Store)
		emailType = models.EmailTypeTrackingUpdate
	default:
		return order, nil
	}

	if _, err := s.emailService.Send(SendEmailInput{
		To:       order.CustomerEmail,
		Customer: order.CustomerName,
		Subject:  tmpl.Subject,
		HTML:     tmpl.HTML,
		Type:     emailType,
		OrderID:  order.ID,
		StoreID:  order.StoreID,
	}); err != nil {
		logrus.WithError(err).WithField("order", order.OrderNumber).
			Warn("Status email failed, status change kept")
	}

	return order, nil
}

// SendManualEmail sends a wrong_address or post_office email for one order on
// operator demand.
func (s *OrderService) SendManualEmail(orderID uuid.UUID, emailType models.EmailType) (*models.Email, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	var tmpl EmailTemplate
	switch emailType {
	case models.EmailTypeWrongAddress:
		tmpl = s.templates.WrongAddress(order, &order.Store)
	case models.EmailTypePostOffice:
		tmpl = s.templates.PostOffice(order, &order.Store)
	default:
		return nil, fmt.Errorf("unsupported email type %q", emailType)
	}

	return s.emailService.Send(SendEmailInput{
		To:       order.CustomerEmail,
		Customer: order.CustomerName,
		Subject:  tmpl.Subject,
		HTML:     tmpl.HTML,
		Type:     emailType,
		OrderID:  order.ID,
		StoreID:  order.StoreID,
	})
}
