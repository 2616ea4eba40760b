package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// EffectiveTiers returns the product's usable tiers sorted for resolution:
// inactive or malformed entries are dropped, remaining tiers are ordered by
// MinQuantity ascending with TierOrder as the tie-break. When no persisted
// tier survives, the synthetic legacy tier is derived from the product's
// wholesale_price/min_wholesale_qty fields.
func EffectiveTiers(p ProductPricing) []Tier {
	tiers := make([]Tier, 0, len(p.Tiers))
	for _, tier := range p.Tiers {
		if !tier.Active {
			continue
		}
		if tier.MinQuantity < 1 || !tier.UnitPrice.IsPositive() {
			continue
		}
		tiers = append(tiers, tier)
	}

	if len(tiers) == 0 {
		if legacy, ok := legacyTier(p); ok {
			tiers = append(tiers, legacy)
		}
	}

	sortTiers(tiers)
	return tiers
}

// legacyTier derives the read-time "Atacado Simples" tier. It is never
// persisted and only exists when the legacy price actually undercuts retail.
func legacyTier(p ProductPricing) (Tier, bool) {
	if p.WholesalePrice == nil || p.MinWholesaleQty == nil {
		return Tier{}, false
	}
	if *p.MinWholesaleQty < 1 || !p.WholesalePrice.IsPositive() {
		return Tier{}, false
	}
	if !p.WholesalePrice.LessThan(p.RetailPrice) {
		return Tier{}, false
	}
	return Tier{
		Name:        LegacyTierName,
		Type:        enums.TierTypeSimple,
		MinQuantity: *p.MinWholesaleQty,
		UnitPrice:   *p.WholesalePrice,
		Active:      true,
	}, true
}

func sortTiers(tiers []Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].MinQuantity != tiers[j].MinQuantity {
			return tiers[i].MinQuantity < tiers[j].MinQuantity
		}
		return tiers[i].Order < tiers[j].Order
	})
}

// ResolveTier selects the highest tier whose MinQuantity is <= qty (inclusive
// lower bound). When no tier qualifies the result is the retail price under
// the "Varejo" label with a zero discount. The hint points at the first tier
// above qty, when one exists.
func ResolveTier(tiers []Tier, retail decimal.Decimal, qty int) Result {
	res := Result{
		UnitPrice: retail,
		TierName:  RetailTierName,
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sortTiers(sorted)

	var current, next *Tier
	for i := range sorted {
		if sorted[i].MinQuantity <= qty {
			// On min_quantity ties the lower tier_order keeps precedence.
			if current == nil || sorted[i].MinQuantity > current.MinQuantity {
				current = &sorted[i]
			}
			continue
		}
		next = &sorted[i]
		break
	}

	if current != nil {
		res.UnitPrice = current.UnitPrice
		res.TierName = current.Name
		res.TierMinQuantity = current.MinQuantity
		res.DiscountPercent = discountPercent(retail, current.UnitPrice)
	}

	if next != nil && next.MinQuantity > qty {
		hint := &NextTierHint{
			TierName:       next.Name,
			QuantityNeeded: next.MinQuantity - qty,
			UnitPrice:      next.UnitPrice,
		}
		if savings := res.UnitPrice.Sub(next.UnitPrice); savings.IsPositive() {
			hint.SavingsPerUnit = savings
		}
		res.NextTier = hint
	}

	return res
}

// discountPercent is the rounded percentage saved versus retail, floored at
// zero so non-monotonic tier data never reports a negative discount.
func discountPercent(retail, unit decimal.Decimal) int {
	if !retail.IsPositive() {
		return 0
	}
	pct := decimal.NewFromInt(1).
		Sub(unit.Div(retail)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if pct < 0 {
		return 0
	}
	return int(pct)
}
