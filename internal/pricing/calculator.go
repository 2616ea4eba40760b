package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// BelowMinimumError reports a wholesale_only quote whose quantity does not
// reach the product's wholesale minimum. The caller decides whether to reject
// the line or raise the quantity; the engine applies one policy everywhere.
type BelowMinimumError struct {
	MinQuantity int
	Quantity    int
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("quantity %d below wholesale minimum %d", e.Quantity, e.MinQuantity)
}

// Calculate prices one product line under the store's model. qty is the line
// quantity; cartTotalQty is the unit count summed across the whole cart,
// consulted only in cart-total mode. The result is always well-formed even
// with partial configuration; unknown models behave as retail_only.
func Calculate(cfg ModelConfig, p ProductPricing, qty, cartTotalQty int) (Result, error) {
	if qty < 0 {
		qty = 0
	}
	if cartTotalQty < qty {
		cartTotalQty = qty
	}

	tiers := EffectiveTiers(withConfigFallbacks(cfg, p))

	switch cfg.Model {
	case enums.PriceModelWholesaleOnly:
		return calculateWholesaleOnly(p, tiers, qty)

	case enums.PriceModelSimpleWholesale:
		if cfg.SimpleWholesaleByCartTotal {
			return calculateByCartTotal(cfg, p, tiers, cartTotalQty), nil
		}
		return ResolveTier(tiers, p.RetailPrice, qty), nil

	case enums.PriceModelGradualWholesale:
		if !cfg.GradualWholesaleEnabled {
			return retailResult(p), nil
		}
		return ResolveTier(tiers, p.RetailPrice, qty), nil

	default:
		// retail_only and anything unrecognized.
		return retailResult(p), nil
	}
}

func calculateWholesaleOnly(p ProductPricing, tiers []Tier, qty int) (Result, error) {
	if len(tiers) == 0 {
		// Misconfigured store: nothing to sell wholesale, degrade to retail.
		return retailResult(p), nil
	}
	minQty := tiers[0].MinQuantity
	if qty < minQty {
		return retailResult(p), &BelowMinimumError{MinQuantity: minQty, Quantity: qty}
	}
	return ResolveTier(tiers, p.RetailPrice, qty), nil
}

// calculateByCartTotal applies wholesale pricing to the line once the cart's
// total unit count reaches the store threshold, regardless of the line's own
// quantity.
func calculateByCartTotal(cfg ModelConfig, p ProductPricing, tiers []Tier, cartTotalQty int) Result {
	minQty := cfg.SimpleWholesaleCartMinQty
	if minQty < 1 {
		minQty = 1
	}

	if cartTotalQty >= minQty {
		qualifying := cartTotalQty
		if len(tiers) > 0 && tiers[0].MinQuantity > qualifying {
			// The store threshold is authoritative in this mode; raise the
			// qualifying quantity so the first tier applies.
			qualifying = tiers[0].MinQuantity
		}
		return ResolveTier(tiers, p.RetailPrice, qualifying)
	}

	res := ResolveTier(tiers, p.RetailPrice, 0)
	if res.NextTier != nil {
		res.NextTier.QuantityNeeded = minQty - cartTotalQty
	}
	return res
}

func retailResult(p ProductPricing) Result {
	return Result{
		UnitPrice: p.RetailPrice,
		TierName:  RetailTierName,
	}
}

// withConfigFallbacks fills the legacy minimum quantity from the store-level
// default when the product does not carry its own.
func withConfigFallbacks(cfg ModelConfig, p ProductPricing) ProductPricing {
	if p.MinWholesaleQty == nil && p.WholesalePrice != nil && cfg.SimpleWholesaleMinQty > 0 {
		minQty := cfg.SimpleWholesaleMinQty
		p.MinWholesaleQty = &minQty
	}
	return p
}

// CheckMinimumPurchase evaluates the store's minimum purchase gate against a
// cart subtotal. Returns nil when the gate is disabled.
func CheckMinimumPurchase(cfg ModelConfig, subtotal decimal.Decimal) *MinimumPurchaseStatus {
	if !cfg.MinimumPurchaseEnabled || !cfg.MinimumPurchaseAmount.IsPositive() {
		return nil
	}
	status := &MinimumPurchaseStatus{
		Required: cfg.MinimumPurchaseAmount,
		Message:  cfg.MinimumPurchaseMessage,
	}
	if subtotal.GreaterThanOrEqual(cfg.MinimumPurchaseAmount) {
		status.Met = true
		return status
	}
	status.Remaining = cfg.MinimumPurchaseAmount.Sub(subtotal)
	return status
}
