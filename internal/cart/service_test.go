package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
)

type stubSettings struct {
	cfg pricing.ModelConfig
}

func (s *stubSettings) GetPricingSettings(_ context.Context, _ uuid.UUID) pricing.ModelConfig {
	return s.cfg
}

type stubProducts struct {
	rows []models.Product
}

func (s *stubProducts) FindManyByStore(_ context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Product
	for _, row := range s.rows {
		if row.StoreID == storeID && wanted[row.ID] {
			out = append(out, row)
		}
	}
	return out, nil
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func dp(value string) *decimal.Decimal {
	parsed := d(value)
	return &parsed
}

func intp(value int) *int {
	return &value
}

func ladderProduct(storeID uuid.UUID) models.Product {
	id := uuid.New()
	return models.Product{
		ID:          id,
		StoreID:     storeID,
		Name:        "Camiseta Lisa",
		RetailPrice: d("10.00"),
		IsActive:    true,
		Tiers: []models.PriceTier{
			{ProductID: id, TierName: "Atacado 10+", TierType: enums.TierTypeGradual, MinQuantity: 10, UnitPrice: d("8.00"), TierOrder: 0, IsActive: true},
			{ProductID: id, TierName: "Atacado 50+", TierType: enums.TierTypeGradual, MinQuantity: 50, UnitPrice: d("6.00"), TierOrder: 1, IsActive: true},
		},
	}
}

func newTestService(t *testing.T, cfg pricing.ModelConfig, rows []models.Product) Service {
	t.Helper()
	svc, err := NewService(&stubSettings{cfg: cfg}, &stubProducts{rows: rows}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestQuoteCartGradualLadder(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, cfg, []models.Product{product})

	result, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 25}},
	})
	if err != nil {
		t.Fatalf("quote cart: %v", err)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(result.Items))
	}
	line := result.Items[0]
	if !line.UnitPrice.Equal(d("8.00")) || line.DiscountPercent != 20 {
		t.Fatalf("unexpected line pricing %+v", line)
	}
	if line.TierName != "Atacado 10+" {
		t.Fatalf("expected tier Atacado 10+, got %q", line.TierName)
	}
	if !line.LineTotal.Equal(d("200.00")) {
		t.Fatalf("expected line total 200.00, got %s", line.LineTotal)
	}
	if !result.Subtotal.Equal(d("200.00")) {
		t.Fatalf("expected subtotal 200.00, got %s", result.Subtotal)
	}
	if line.NextTier == nil || line.NextTier.QuantityNeeded != 25 {
		t.Fatalf("expected hint of 25 more units, got %+v", line.NextTier)
	}
	if result.Progress.ItemsToNextTier != 25 {
		t.Fatalf("expected 25 items to next tier, got %d", result.Progress.ItemsToNextTier)
	}
	if result.MinimumPurchase != nil {
		t.Fatalf("minimum purchase disabled, got %+v", result.MinimumPurchase)
	}
}

func TestQuoteCartMergesDuplicateLines(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, cfg, []models.Product{product})

	result, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{
			{ProductID: product.ID, Quantity: 6},
			{ProductID: product.ID, Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("quote cart: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Quantity != 10 {
		t.Fatalf("expected one merged line of 10, got %+v", result.Items)
	}
	if !result.Items[0].UnitPrice.Equal(d("8.00")) {
		t.Fatalf("merged quantity must qualify for the 10+ tier, got %s", result.Items[0].UnitPrice)
	}
}

func TestQuoteCartRejectsUnknownProduct(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	svc := newTestService(t, pricing.DefaultModelConfig(), nil)

	_, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteCartRejectsInactiveProduct(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	product.IsActive = false
	svc := newTestService(t, pricing.DefaultModelConfig(), []models.Product{product})

	_, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteCartValidatesQuantities(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	svc := newTestService(t, pricing.DefaultModelConfig(), []models.Product{product})

	if _, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{}); pkgerrors.As(err) == nil {
		t.Fatal("expected rejection of empty cart")
	}

	_, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 0}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestQuoteCartWholesaleOnlyBelowMinimum(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelWholesaleOnly}
	svc := newTestService(t, cfg, []models.Product{product})

	_, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", appErr.Details())
	}
	lines, ok := details["rejectedItems"].([]RejectedLine)
	if !ok || len(lines) != 1 {
		t.Fatalf("expected one rejected line, got %v", details["rejectedItems"])
	}
	if lines[0].MinQuantity != 10 || lines[0].Reason != "below_wholesale_minimum" {
		t.Fatalf("unexpected rejection %+v", lines[0])
	}
}

func TestQuoteCartSimpleWholesaleByCartTotal(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	productA := models.Product{
		ID:              uuid.New(),
		StoreID:         storeID,
		Name:            "Caneca",
		RetailPrice:     d("10.00"),
		WholesalePrice:  dp("7.00"),
		MinWholesaleQty: intp(20),
		IsActive:        true,
	}
	productB := productA
	productB.ID = uuid.New()
	productB.Name = "Garrafa"

	cfg := pricing.ModelConfig{
		Model:                      enums.PriceModelSimpleWholesale,
		SimpleWholesaleByCartTotal: true,
		SimpleWholesaleCartMinQty:  15,
	}
	svc := newTestService(t, cfg, []models.Product{productA, productB})

	result, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{
			{ProductID: productA.ID, Quantity: 8},
			{ProductID: productB.ID, Quantity: 8},
		},
	})
	if err != nil {
		t.Fatalf("quote cart: %v", err)
	}

	// 16 items cart-wide clears the 15-unit gate, so both lines drop to
	// the wholesale price even though neither reaches 15 alone.
	for _, line := range result.Items {
		if !line.UnitPrice.Equal(d("7.00")) {
			t.Fatalf("expected wholesale price on %s, got %s", line.Name, line.UnitPrice)
		}
	}
	if !result.Subtotal.Equal(d("112.00")) {
		t.Fatalf("expected subtotal 112.00, got %s", result.Subtotal)
	}
}

func TestQuoteCartMinimumPurchase(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	cfg := pricing.ModelConfig{
		Model:                   enums.PriceModelGradualWholesale,
		GradualWholesaleEnabled: true,
		MinimumPurchaseEnabled:  true,
		MinimumPurchaseAmount:   d("100.00"),
		MinimumPurchaseMessage:  "Pedido mínimo de R$ 100",
	}
	svc := newTestService(t, cfg, []models.Product{product})

	result, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("quote cart: %v", err)
	}
	status := result.MinimumPurchase
	if status == nil {
		t.Fatal("expected minimum purchase status")
	}
	if status.Met {
		t.Fatal("50.00 subtotal must not meet the 100.00 minimum")
	}
	if !status.Remaining.Equal(d("50.00")) {
		t.Fatalf("expected 50.00 remaining, got %s", status.Remaining)
	}
	if status.Message != "Pedido mínimo de R$ 100" {
		t.Fatalf("unexpected message %q", status.Message)
	}
}

func TestQuoteCartOriginalPriceSnapshot(t *testing.T) {
	t.Parallel()

	storeID := uuid.New()
	product := ladderProduct(storeID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, cfg, []models.Product{product})

	// The store raised retail to 10.00 after the buyer added the item at 9.00.
	result, err := svc.QuoteCart(context.Background(), storeID, QuoteInput{
		Items: []QuoteItemInput{{ProductID: product.ID, Quantity: 5, OriginalPrice: dp("9.00")}},
	})
	if err != nil {
		t.Fatalf("quote cart: %v", err)
	}

	line := result.Items[0]
	if !line.RetailPrice.Equal(d("9.00")) {
		t.Fatalf("expected snapshot retail 9.00, got %s", line.RetailPrice)
	}
	if !line.UnitPrice.Equal(d("9.00")) {
		t.Fatalf("expected unit price 9.00 below tier threshold, got %s", line.UnitPrice)
	}
	if !line.LineTotal.Equal(d("45.00")) {
		t.Fatalf("expected line total 45.00, got %s", line.LineTotal)
	}
}
