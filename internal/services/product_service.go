// internal/services/product_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

type ProductService struct {
	db          *gorm.DB
	syncService *SyncService
}

type UpdateProductRequest struct {
	InStock *bool            `json:"in_stock,omitempty"`
	Cost    *decimal.Decimal `json:"cost,omitempty"`
}

func NewProductService(db *gorm.DB, syncService *SyncService) *ProductService {
	return &ProductService{
		db:          db,
		syncService: syncService,
	}
}

func (s *ProductService) ListProducts(storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("store_id = ?", storeID).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}

// UpdateProduct applies operator edits. A stock toggle goes through the sync
// service so the change is mirrored to Shopify before the local row moves.
func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.InStock != nil {
		if err := s.syncService.UpdateProductStock(ctx, productID, *req.InStock); err != nil {
			return nil, err
		}
		product.InStock = *req.InStock
	}

	if req.Cost != nil {
		if err := s.db.Model(&product).Update("cost", *req.Cost).Error; err != nil {
			return nil, fmt.Errorf("failed to update product cost: %w", err)
		}
		product.Cost = *req.Cost
	}

	return &product, nil
}
