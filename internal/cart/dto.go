package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// QuoteItemInput is one requested cart line. OriginalPrice carries the retail
// snapshot taken when the line entered the cart; absent, the current product
// retail price is used.
type QuoteItemInput struct {
	ProductID     uuid.UUID        `json:"productId"`
	Quantity      int              `json:"quantity"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
}

// QuoteInput is the full cart sent for pricing.
type QuoteInput struct {
	Items []QuoteItemInput `json:"items"`
}

// NextTierDTO is the upsell hint surfaced on a quoted line.
type NextTierDTO struct {
	TierName       string          `json:"tierName"`
	QuantityNeeded int             `json:"quantityNeeded"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	SavingsPerUnit decimal.Decimal `json:"savingsPerUnit"`
}

// QuoteItemDTO is one priced cart line.
type QuoteItemDTO struct {
	ProductID       uuid.UUID       `json:"productId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	RetailPrice     decimal.Decimal `json:"retailPrice"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent int             `json:"discountPercent"`
	TierName        string          `json:"tierName"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	NextTier        *NextTierDTO    `json:"nextTier,omitempty"`
}

// QuoteResult is the priced cart returned to the storefront.
type QuoteResult struct {
	PriceModel      enums.PriceModel               `json:"priceModel"`
	Items           []QuoteItemDTO                 `json:"items"`
	TotalItems      int                            `json:"totalItems"`
	Subtotal        decimal.Decimal                `json:"subtotal"`
	Progress        pricing.CartProgress           `json:"progress"`
	MinimumPurchase *pricing.MinimumPurchaseStatus `json:"minimumPurchase,omitempty"`
}

// RejectedLine reports why one cart line blocked the quote.
type RejectedLine struct {
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"minQuantity"`
	Reason      string    `json:"reason"`
}

func nextTierDTO(hint *pricing.NextTierHint) *NextTierDTO {
	if hint == nil {
		return nil
	}
	return &NextTierDTO{
		TierName:       hint.TierName,
		QuantityNeeded: hint.QuantityNeeded,
		UnitPrice:      hint.UnitPrice,
		SavingsPerUnit: hint.SavingsPerUnit,
	}
}
