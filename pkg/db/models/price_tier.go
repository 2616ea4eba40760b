package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// PriceTier captures one step of a product's wholesale ladder.
type PriceTier struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	TierName    string          `gorm:"column:tier_name;not null"`
	TierType    enums.TierType  `gorm:"column:tier_type;not null;default:'gradual'"`
	MinQuantity int             `gorm:"column:min_quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TierOrder   int             `gorm:"column:tier_order;not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
