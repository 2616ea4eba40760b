package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing owned by a store.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID      `gorm:"column:store_id;type:uuid;not null;index"`
	SKU         string         `gorm:"column:sku;not null"`
	Name        string         `gorm:"column:name;not null"`
	Description *string        `gorm:"column:description"`
	Category    *string        `gorm:"column:category"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	ImageURL    *string        `gorm:"column:image_url"`

	RetailPrice decimal.Decimal `gorm:"column:retail_price;type:numeric(12,2);not null"`

	// Legacy single-step wholesale fields. When the product carries no
	// persisted tiers, a synthetic "Atacado Simples" tier is derived from
	// these at read time.
	WholesalePrice  *decimal.Decimal `gorm:"column:wholesale_price;type:numeric(12,2)"`
	MinWholesaleQty *int             `gorm:"column:min_wholesale_qty"`

	IsActive bool `gorm:"column:is_active;not null;default:true"`

	Tiers []PriceTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
