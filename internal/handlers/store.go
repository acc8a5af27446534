// internal/handlers/store.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopdash/backend/internal/services"
	"github.com/shopdash/backend/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// POST /stores/connect
func (h *StoreHandler) ConnectStore(c *gin.Context) {
	var req services.ConnectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	store, err := h.storeService.Connect(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"id":          store.ID,
		"name":        store.Name,
		"shopify_url": store.ShopifyURL,
	})
}

// GET /auth/callback
func (h *StoreHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	shop := c.Query("shop")
	if code == "" || shop == "" {
		utils.BadRequestResponse(c, "Missing code or shop parameter", nil)
		return
	}

	store, err := h.storeService.HandleOAuthCallback(c.Request.Context(), shop, code)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/?connected=%s", store.ID))
}
