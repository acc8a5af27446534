// internal/handlers/emails.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/services"
	"github.com/shopdash/backend/internal/utils"
)

type EmailHandler struct {
	emailService   *services.EmailService
	orderService   *services.OrderService
	addressService *services.AddressService
	followUpDays   int
}

func NewEmailHandler(emailService *services.EmailService, orderService *services.OrderService, addressService *services.AddressService, followUpDays int) *EmailHandler {
	return &EmailHandler{
		emailService:   emailService,
		orderService:   orderService,
		addressService: addressService,
		followUpDays:   followUpDays,
	}
}

// GET /emails
func (h *EmailHandler) GetEmails(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	emails, err := h.emailService.ListEmails(storeID, 100)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, emails)
}

type sendEmailRequest struct {
	OrderID uuid.UUID        `json:"order_id" validate:"required"`
	Type    models.EmailType `json:"type" validate:"required,oneof=wrong_address post_office"`
}

// POST /emails
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	email, err := h.orderService.SendManualEmail(req.OrderID, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, email)
}

type sendFollowUpsRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
}

// POST /emails/follow-ups
//
// Meant to be hit by an external scheduler (cron) once a day.
func (h *EmailHandler) SendFollowUps(c *gin.Context) {
	var req sendFollowUpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	sent, err := h.addressService.SendFollowUps(req.StoreID, h.followUpDays)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"sent": sent})
}
