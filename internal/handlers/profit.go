// internal/handlers/profit.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopdash/backend/internal/services"
	"github.com/shopdash/backend/internal/utils"
)

type ProfitHandler struct {
	profitService *services.ProfitService
}

func NewProfitHandler(profitService *services.ProfitService) *ProfitHandler {
	return &ProfitHandler{
		profitService: profitService,
	}
}

// GET /profit
func (h *ProfitHandler) GetProfitEntries(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	entries, err := h.profitService.ListEntries(storeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, entries)
}

type recalculateProfitsRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
	Month   string    `json:"month" validate:"omitempty,month"`
}

// POST /profit/recalculate
func (h *ProfitHandler) RecalculateProfits(c *gin.Context) {
	var req recalculateProfitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if req.Month != "" {
		entry, err := h.profitService.CalculateMonthlyProfit(req.StoreID, req.Month)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, entry)
		return
	}

	entries, err := h.profitService.CalculateRecentProfits(req.StoreID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, entries)
}

// PATCH /profit/:id
func (h *ProfitHandler) UpdateProfitEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid entry ID", nil)
		return
	}

	var req services.UpdateProfitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	entry, err := h.profitService.UpdateEntry(entryID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			utils.NotFoundResponse(c, "Profit entry not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, entry)
}
