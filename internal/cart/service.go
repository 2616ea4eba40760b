package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/metrics"
)

const maxQuoteLines = 200

type settingsProvider interface {
	GetPricingSettings(ctx context.Context, storeID uuid.UUID) pricing.ModelConfig
}

type productLoader interface {
	FindManyByStore(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

// Service prices carts against a store's price model.
type Service interface {
	QuoteCart(ctx context.Context, storeID uuid.UUID, input QuoteInput) (*QuoteResult, error)
}

type service struct {
	settings settingsProvider
	products productLoader
	metrics  *metrics.QuoteMetrics
}

// NewService builds a cart quoting service. Metrics are optional.
func NewService(settings settingsProvider, productRepo productLoader, quoteMetrics *metrics.QuoteMetrics) (Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings provider required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		settings: settings,
		products: productRepo,
		metrics:  quoteMetrics,
	}, nil
}

// QuoteCart prices every line, aggregates tier progress, and checks the
// store's minimum purchase. The cart itself is never persisted.
func (s *service) QuoteCart(ctx context.Context, storeID uuid.UUID, input QuoteInput) (*QuoteResult, error) {
	started := time.Now()

	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	rows, err := s.products.FindManyByStore(ctx, storeID, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	var missing []uuid.UUID
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			missing = append(missing, item.ProductID)
		}
	}
	if len(missing) > 0 {
		s.metrics.IncRejection("unknown_product")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart references unknown or inactive products").
			WithDetails(map[string]any{"productIds": missing})
	}

	cfg := s.settings.GetPricingSettings(ctx, storeID)

	cartTotal := 0
	for _, item := range items {
		cartTotal += item.Quantity
	}

	result := &QuoteResult{
		PriceModel: cfg.Model,
		Items:      make([]QuoteItemDTO, 0, len(items)),
		TotalItems: cartTotal,
		Subtotal:   decimal.Zero,
	}
	lines := make([]pricing.CartLine, 0, len(items))
	var rejected []RejectedLine

	for _, item := range items {
		product := byID[item.ProductID]
		productPricing := products.PricingFromModel(product)
		retailPrice := product.RetailPrice
		if item.OriginalPrice != nil && item.OriginalPrice.IsPositive() {
			retailPrice = *item.OriginalPrice
			productPricing.RetailPrice = retailPrice
		}

		lineResult, err := pricing.Calculate(cfg, productPricing, item.Quantity, cartTotal)
		if err != nil {
			var belowMin *pricing.BelowMinimumError
			if errors.As(err, &belowMin) {
				rejected = append(rejected, RejectedLine{
					ProductID:   item.ProductID,
					Quantity:    item.Quantity,
					MinQuantity: belowMin.MinQuantity,
					Reason:      "below_wholesale_minimum",
				})
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price cart line")
		}

		lineTotal := lineResult.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		result.Items = append(result.Items, QuoteItemDTO{
			ProductID:       item.ProductID,
			Name:            product.Name,
			Quantity:        item.Quantity,
			RetailPrice:     retailPrice,
			UnitPrice:       lineResult.UnitPrice,
			DiscountPercent: lineResult.DiscountPercent,
			TierName:        lineResult.TierName,
			LineTotal:       lineTotal,
			NextTier:        nextTierDTO(lineResult.NextTier),
		})
		result.Subtotal = result.Subtotal.Add(lineTotal)

		lines = append(lines, pricing.CartLine{
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			Pricing:           productPricing,
			OriginalUnitPrice: retailPrice,
		})
	}

	if len(rejected) > 0 {
		s.metrics.IncRejection("below_wholesale_minimum")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart does not reach the wholesale minimum").
			WithDetails(map[string]any{"rejectedItems": rejected})
	}

	result.Progress = pricing.AggregateCartProgress(cfg, lines)
	result.MinimumPurchase = pricing.CheckMinimumPurchase(cfg, result.Subtotal)

	s.metrics.IncQuote(cfg.Model.String())
	s.metrics.ObserveDuration(cfg.Model.String(), time.Since(started))
	return result, nil
}

// normalizeItems validates quantities and merges duplicate product lines.
func normalizeItems(items []QuoteItemInput) ([]QuoteItemInput, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if len(items) > maxQuoteLines {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cart exceeds %d lines", maxQuoteLines))
	}

	merged := make([]QuoteItemInput, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"productId": item.ProductID})
		}
		if at, ok := index[item.ProductID]; ok {
			merged[at].Quantity += item.Quantity
			if merged[at].OriginalPrice == nil {
				merged[at].OriginalPrice = item.OriginalPrice
			}
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
