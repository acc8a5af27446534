// internal/handlers/products.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopdash/backend/internal/services"
	"github.com/shopdash/backend/internal/utils"
)

type ProductHandler struct {
	productService  *services.ProductService
	forecastService *services.ForecastService
}

func NewProductHandler(productService *services.ProductService, forecastService *services.ForecastService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		forecastService: forecastService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	if c.Query("forecast") == "true" {
		forecast, err := h.forecastService.GetStockForecast(storeID)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, forecast)
		return
	}

	products, err := h.productService.ListProducts(storeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, products)
}

// PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, product)
}
