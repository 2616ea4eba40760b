package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// PricingSettings holds the per-store price model configuration. Exactly one
// model is active at a time; parameters of inactive modes are retained but
// ignored by the engine.
type PricingSettings struct {
	ID      uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID uuid.UUID        `gorm:"column:store_id;type:uuid;not null;uniqueIndex"`
	Model   enums.PriceModel `gorm:"column:price_model;not null;default:'retail_only'"`

	SimpleWholesaleMinQty      int  `gorm:"column:simple_wholesale_min_qty;not null;default:0"`
	SimpleWholesaleByCartTotal bool `gorm:"column:simple_wholesale_by_cart_total;not null;default:false"`
	SimpleWholesaleCartMinQty  int  `gorm:"column:simple_wholesale_cart_min_qty;not null;default:0"`
	GradualWholesaleEnabled    bool `gorm:"column:gradual_wholesale_enabled;not null;default:false"`

	MinimumPurchaseEnabled bool            `gorm:"column:minimum_purchase_enabled;not null;default:false"`
	MinimumPurchaseAmount  decimal.Decimal `gorm:"column:minimum_purchase_amount;type:numeric(12,2);not null;default:0"`
	MinimumPurchaseMessage *string         `gorm:"column:minimum_purchase_message"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
