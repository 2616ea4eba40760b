package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// StorefrontDTO is the public store header rendered above the catalog.
type StorefrontDTO struct {
	ID          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Categories  []string         `json:"categories"`
	LogoURL     *string          `json:"logoUrl,omitempty"`
	BannerURL   *string          `json:"bannerUrl,omitempty"`
	PriceModel  enums.PriceModel `json:"priceModel"`

	MinimumPurchase *MinimumPurchaseBanner `json:"minimumPurchase,omitempty"`
}

// MinimumPurchaseBanner announces the store's order floor to shoppers.
type MinimumPurchaseBanner struct {
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message,omitempty"`
}

// ItemTierDTO is one public ladder step with its discount vs retail.
type ItemTierDTO struct {
	TierName        string          `json:"tierName"`
	MinQuantity     int             `json:"minQuantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent int             `json:"discountPercent"`
}

// ItemDTO is a catalog listing teaser.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Tags        []string  `json:"tags"`

	RetailPrice  decimal.Decimal `json:"retailPrice"`
	FromPrice    decimal.Decimal `json:"fromPrice"`
	MaxDiscount  int             `json:"maxDiscount"`
	HasWholesale bool            `json:"hasWholesale"`
}

// ProductDTO is the public product detail with its full ladder.
type ProductDTO struct {
	ItemDTO
	Description *string       `json:"description,omitempty"`
	SKU         string        `json:"sku,omitempty"`
	Tiers       []ItemTierDTO `json:"tiers"`
}

// Page is one listing page plus the follow-up cursor.
type Page struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
	HasMore    bool      `json:"hasMore"`
}

func storefrontFromStore(store *stores.StoreDTO, cfg pricing.ModelConfig) *StorefrontDTO {
	dto := &StorefrontDTO{
		ID:          store.ID,
		Slug:        store.Slug,
		Name:        store.Name,
		Description: store.Description,
		Categories:  store.Categories,
		LogoURL:     store.LogoURL,
		BannerURL:   store.BannerURL,
		PriceModel:  cfg.Model,
	}
	if cfg.MinimumPurchaseEnabled {
		dto.MinimumPurchase = &MinimumPurchaseBanner{
			Amount:  cfg.MinimumPurchaseAmount,
			Message: cfg.MinimumPurchaseMessage,
		}
	}
	return dto
}

// itemFromProduct builds the teaser: the "from" price is the cheapest unit
// price any quantity can reach under the store's model.
func itemFromProduct(product *models.Product, tiers []pricing.Tier) ItemDTO {
	item := ItemDTO{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		Tags:        product.Tags,
		RetailPrice: product.RetailPrice,
		FromPrice:   product.RetailPrice,
	}
	for _, tier := range tiers {
		if tier.UnitPrice.LessThan(item.FromPrice) {
			item.FromPrice = tier.UnitPrice
		}
	}
	if len(tiers) > 0 {
		item.HasWholesale = true
		best := pricing.ResolveTier(tiers, product.RetailPrice, tiers[len(tiers)-1].MinQuantity)
		item.MaxDiscount = best.DiscountPercent
	}
	return item
}

func tierDTOs(retail decimal.Decimal, tiers []pricing.Tier) []ItemTierDTO {
	out := make([]ItemTierDTO, 0, len(tiers))
	for _, tier := range tiers {
		resolved := pricing.ResolveTier(tiers, retail, tier.MinQuantity)
		out = append(out, ItemTierDTO{
			TierName:        tier.Name,
			MinQuantity:     tier.MinQuantity,
			UnitPrice:       tier.UnitPrice,
			DiscountPercent: resolved.DiscountPercent,
		})
	}
	return out
}
