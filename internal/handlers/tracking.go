// internal/handlers/tracking.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopdash/backend/internal/services"
	"github.com/shopdash/backend/internal/utils"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// GET /public/tracking/:number
//
// Unauthenticated. The tracking number is the only credential, so the
// response never includes the full address or the customer email.
func (h *TrackingHandler) GetTrackingPage(c *gin.Context) {
	page, err := h.trackingService.Resolve(c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrTrackingNotFound) {
			utils.NotFoundResponse(c, "Tracking number not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, page)
}

// GET /tracking/config
func (h *TrackingHandler) GetTrackingConfig(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	cfg, err := h.trackingService.GetConfig(storeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, cfg)
}

// PUT /tracking/config
func (h *TrackingHandler) UpdateTrackingConfig(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	var req services.UpdateTrackingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	cfg, err := h.trackingService.UpsertConfig(storeID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, cfg)
}
