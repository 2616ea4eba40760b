package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// TierDTO is the API representation of one ladder step.
type TierDTO struct {
	ID          uuid.UUID       `json:"id"`
	TierName    string          `json:"tierName"`
	TierType    enums.TierType  `json:"tierType"`
	MinQuantity int             `json:"minQuantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TierOrder   int             `json:"tierOrder"`
	IsActive    bool            `json:"isActive"`
}

// ProductDTO is the admin-facing product representation.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"storeId"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        []string  `json:"tags"`
	ImageURL    *string   `json:"imageUrl,omitempty"`

	RetailPrice     decimal.Decimal  `json:"retailPrice"`
	WholesalePrice  *decimal.Decimal `json:"wholesalePrice,omitempty"`
	MinWholesaleQty *int             `json:"minWholesaleQty,omitempty"`
	Tiers           []TierDTO        `json:"tiers"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProductDTO maps a persisted product onto its DTO.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	tiers := make([]TierDTO, 0, len(product.Tiers))
	for _, tier := range product.Tiers {
		tiers = append(tiers, TierDTO{
			ID:          tier.ID,
			TierName:    tier.TierName,
			TierType:    tier.TierType,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			TierOrder:   tier.TierOrder,
			IsActive:    tier.IsActive,
		})
	}
	return &ProductDTO{
		ID:              product.ID,
		StoreID:         product.StoreID,
		SKU:             product.SKU,
		Name:            product.Name,
		Description:     product.Description,
		Category:        product.Category,
		Tags:            product.Tags,
		ImageURL:        product.ImageURL,
		RetailPrice:     product.RetailPrice,
		WholesalePrice:  product.WholesalePrice,
		MinWholesaleQty: product.MinWholesaleQty,
		Tiers:           tiers,
		IsActive:        product.IsActive,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// PricingFromModel extracts the engine inputs from a persisted product.
func PricingFromModel(product *models.Product) pricing.ProductPricing {
	if product == nil {
		return pricing.ProductPricing{}
	}
	tiers := make([]pricing.Tier, 0, len(product.Tiers))
	for _, tier := range product.Tiers {
		tiers = append(tiers, pricing.Tier{
			Name:        tier.TierName,
			Type:        tier.TierType,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			Order:       tier.TierOrder,
			Active:      tier.IsActive,
		})
	}
	return pricing.ProductPricing{
		RetailPrice:     product.RetailPrice,
		Tiers:           tiers,
		WholesalePrice:  product.WholesalePrice,
		MinWholesaleQty: product.MinWholesaleQty,
	}
}
