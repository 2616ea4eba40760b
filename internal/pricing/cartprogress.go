package pricing

import (
	"errors"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// AggregateCartProgress rolls per-line tier progress into a single cart-wide
// summary: how many more units unlock the next discount and how far along the
// cart already is. The computation is pure; it is recomputed on every cart
// mutation.
func AggregateCartProgress(cfg ModelConfig, lines []CartLine) CartProgress {
	progress := CartProgress{
		CurrentLevel: RetailTierName,
		Lines:        make([]LineProgress, 0, len(lines)),
	}
	if len(lines) == 0 {
		return progress
	}

	cartTotal := 0
	for _, line := range lines {
		if line.Quantity > 0 {
			cartTotal += line.Quantity
		}
	}
	progress.TotalItems = cartTotal

	byCartTotal := cfg.Model == enums.PriceModelSimpleWholesale && cfg.SimpleWholesaleByCartTotal

	allMaxed := true
	lowestDiscount := -1
	cartGap := 0

	for _, line := range lines {
		res, err := Calculate(cfg, line.Pricing, line.Quantity, cartTotal)

		lp := LineProgress{
			ProductID:       line.ProductID,
			TierName:        res.TierName,
			DiscountPercent: res.DiscountPercent,
			AtMaxTier:       res.NextTier == nil,
		}

		var belowMin *BelowMinimumError
		if errors.As(err, &belowMin) {
			lp.QuantityNeeded = belowMin.MinQuantity - line.Quantity
			lp.AtMaxTier = false
		} else if res.NextTier != nil {
			lp.QuantityNeeded = res.NextTier.QuantityNeeded
			lp.NextTierName = res.NextTier.TierName
			lp.SavingsPerUnit = res.NextTier.SavingsPerUnit
		}

		if !lp.AtMaxTier {
			allMaxed = false
			if byCartTotal {
				// Every line reports the same cart-wide gap; count it once.
				if lp.QuantityNeeded > cartGap {
					cartGap = lp.QuantityNeeded
				}
			} else {
				progress.ItemsToNextTier += lp.QuantityNeeded
			}
		}

		if lowestDiscount < 0 || lp.DiscountPercent < lowestDiscount {
			lowestDiscount = lp.DiscountPercent
			progress.CurrentLevel = lp.TierName
		}

		progress.Lines = append(progress.Lines, lp)
	}

	if byCartTotal {
		progress.ItemsToNextTier = cartGap
	}

	progress.AtMaxTier = allMaxed
	progress.ProgressPercent = progressPercent(progress.TotalItems, progress.ItemsToNextTier)
	return progress
}

// progressPercent is totalItems/(totalItems+itemsToNextTier)*100 clamped to
// [0,100]; an empty cart reports zero.
func progressPercent(totalItems, itemsToNext int) float64 {
	if totalItems <= 0 {
		return 0
	}
	if itemsToNext <= 0 {
		return 100
	}
	pct := float64(totalItems) / float64(totalItems+itemsToNext) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
