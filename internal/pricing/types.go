package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

const (
	// RetailTierName labels the implicit no-discount tier.
	RetailTierName = "Varejo"
	// LegacyTierName labels the synthetic tier derived from the legacy
	// wholesale_price/min_wholesale_qty product fields.
	LegacyTierName = "Atacado Simples"
)

// ModelConfig is the per-store price model configuration consumed by the
// engine. It mirrors the persisted PricingSettings row but carries no
// storage concerns.
type ModelConfig struct {
	Model enums.PriceModel

	SimpleWholesaleMinQty      int
	SimpleWholesaleByCartTotal bool
	SimpleWholesaleCartMinQty  int
	GradualWholesaleEnabled    bool

	MinimumPurchaseEnabled bool
	MinimumPurchaseAmount  decimal.Decimal
	MinimumPurchaseMessage string
}

// DefaultModelConfig is the safe fallback used when a store has no pricing
// settings row or the fetch failed: plain retail, nothing gated.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{Model: enums.PriceModelRetailOnly}
}

// Tier is one step of a product's discount ladder.
type Tier struct {
	Name        string
	Type        enums.TierType
	MinQuantity int
	UnitPrice   decimal.Decimal
	Order       int
	Active      bool
}

// ProductPricing carries everything the engine needs to price one product.
type ProductPricing struct {
	RetailPrice decimal.Decimal
	Tiers       []Tier

	// Legacy single-step wholesale fields, honored only when Tiers is empty.
	WholesalePrice  *decimal.Decimal
	MinWholesaleQty *int
}

// NextTierHint describes the upsell opportunity one tier above the current
// quantity. SavingsPerUnit is zero when the next tier does not undercut the
// current unit price.
type NextTierHint struct {
	TierName       string
	QuantityNeeded int
	UnitPrice      decimal.Decimal
	SavingsPerUnit decimal.Decimal
}

// Result is the outcome of pricing a (product, quantity) pair. It is always
// well-formed: UnitPrice falls back to retail and DiscountPercent is never
// negative.
type Result struct {
	UnitPrice       decimal.Decimal
	DiscountPercent int
	TierName        string
	TierMinQuantity int
	NextTier        *NextTierHint
}

// CartLine is one cart entry as seen by the aggregate progress computation.
// OriginalUnitPrice is the retail snapshot taken when the item entered the
// cart; it never changes afterwards.
type CartLine struct {
	ProductID         uuid.UUID
	Quantity          int
	Pricing           ProductPricing
	OriginalUnitPrice decimal.Decimal
}

// LineProgress reports tier progress for a single cart line.
type LineProgress struct {
	ProductID       uuid.UUID
	TierName        string
	DiscountPercent int
	QuantityNeeded  int
	NextTierName    string
	SavingsPerUnit  decimal.Decimal
	AtMaxTier       bool
}

// CartProgress summarizes tier progress across the whole cart.
type CartProgress struct {
	TotalItems      int
	ItemsToNextTier int
	ProgressPercent float64
	CurrentLevel    string
	AtMaxTier       bool
	Lines           []LineProgress
}

// MinimumPurchaseStatus reports whether the cart satisfies the store's
// minimum purchase amount.
type MinimumPurchaseStatus struct {
	Required  decimal.Decimal
	Remaining decimal.Decimal
	Met       bool
	Message   string
}
