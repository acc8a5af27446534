// internal/models/profit.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitEntry is the monthly P&L rollup, unique per (store, month). Revenue
// and Profit are derived and recomputed on every calculation; the cost fields
// are operator-overridable and preserved once set.
type ProfitEntry struct {
	BaseModel
	StoreID    uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;uniqueIndex:idx_profit_store_month"`
	Month      string          `json:"month" gorm:"size:7;not null;uniqueIndex:idx_profit_store_month"` // "YYYY-MM"
	Revenue    decimal.Decimal `json:"revenue" gorm:"type:decimal(12,2)"`
	Costs      decimal.Decimal `json:"costs" gorm:"type:decimal(12,2)"`
	AdSpend    decimal.Decimal `json:"ad_spend" gorm:"type:decimal(12,2)"`
	Shipping   decimal.Decimal `json:"shipping" gorm:"type:decimal(12,2)"`
	OtherCosts decimal.Decimal `json:"other_costs" gorm:"type:decimal(12,2)"`
	Profit     decimal.Decimal `json:"profit" gorm:"type:decimal(12,2)"`
}
