package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/pagination"
)

type stubStores struct {
	store *stores.StoreDTO
	cfg   pricing.ModelConfig
}

func (s *stubStores) GetBySlug(_ context.Context, slug string) (*stores.StoreDTO, error) {
	if s.store == nil || s.store.Slug != slug {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return s.store, nil
}

func (s *stubStores) GetPricingSettings(_ context.Context, _ uuid.UUID) pricing.ModelConfig {
	return s.cfg
}

type stubProductReader struct {
	rows []models.Product
}

func (r *stubProductReader) ListByStore(_ context.Context, storeID uuid.UUID, filters products.ListFilters, page pagination.Params) ([]models.Product, error) {
	var out []models.Product
	for _, row := range r.rows {
		if row.StoreID != storeID {
			continue
		}
		if filters.OnlyActive && !row.IsActive {
			continue
		}
		out = append(out, row)
	}
	limit := pagination.LimitWithBuffer(page.Limit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductReader) FindByStoreAndID(_ context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	for i := range r.rows {
		if r.rows[i].StoreID == storeID && r.rows[i].ID == productID {
			return &r.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func activeStore() *stores.StoreDTO {
	return &stores.StoreDTO{
		ID:     uuid.New(),
		Slug:   "distribuidora-sol",
		Name:   "Distribuidora Sol",
		Status: enums.StoreStatusActive,
	}
}

func tieredProduct(storeID uuid.UUID) models.Product {
	id := uuid.New()
	return models.Product{
		ID:          id,
		StoreID:     storeID,
		SKU:         "CAM-001",
		Name:        "Camiseta Lisa",
		RetailPrice: d("10.00"),
		IsActive:    true,
		CreatedAt:   time.Now(),
		Tiers: []models.PriceTier{
			{ProductID: id, TierName: "Atacado 10+", TierType: enums.TierTypeGradual, MinQuantity: 10, UnitPrice: d("8.00"), IsActive: true},
			{ProductID: id, TierName: "Atacado 50+", TierType: enums.TierTypeGradual, MinQuantity: 50, UnitPrice: d("6.00"), TierOrder: 1, IsActive: true},
		},
	}
}

func newTestService(t *testing.T, store *stores.StoreDTO, cfg pricing.ModelConfig, rows []models.Product) Service {
	t.Helper()
	svc, err := NewService(&stubStores{store: store, cfg: cfg}, &stubProductReader{rows: rows})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetStorefrontWithMinimumPurchaseBanner(t *testing.T) {
	t.Parallel()

	store := activeStore()
	cfg := pricing.ModelConfig{
		Model:                   enums.PriceModelGradualWholesale,
		GradualWholesaleEnabled: true,
		MinimumPurchaseEnabled:  true,
		MinimumPurchaseAmount:   d("150.00"),
		MinimumPurchaseMessage:  "Pedido mínimo de R$ 150",
	}
	svc := newTestService(t, store, cfg, nil)

	front, err := svc.GetStorefront(context.Background(), store.Slug)
	if err != nil {
		t.Fatalf("get storefront: %v", err)
	}
	if front.PriceModel != enums.PriceModelGradualWholesale {
		t.Fatalf("unexpected price model %s", front.PriceModel)
	}
	if front.MinimumPurchase == nil || !front.MinimumPurchase.Amount.Equal(d("150.00")) {
		t.Fatalf("expected minimum purchase banner, got %+v", front.MinimumPurchase)
	}
}

func TestGetStorefrontHidesSuspendedStore(t *testing.T) {
	t.Parallel()

	store := activeStore()
	store.Status = enums.StoreStatusSuspended
	svc := newTestService(t, store, pricing.DefaultModelConfig(), nil)

	_, err := svc.GetStorefront(context.Background(), store.Slug)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for suspended store, got %v", err)
	}
}

func TestListProductsTeaserPricing(t *testing.T) {
	t.Parallel()

	store := activeStore()
	product := tieredProduct(store.ID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, store, cfg, []models.Product{product})

	page, err := svc.ListProducts(context.Background(), store.Slug, products.ListFilters{}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	item := page.Items[0]
	if !item.FromPrice.Equal(d("6.00")) {
		t.Fatalf("expected from-price 6.00, got %s", item.FromPrice)
	}
	if item.MaxDiscount != 40 {
		t.Fatalf("expected max discount 40, got %d", item.MaxDiscount)
	}
	if !item.HasWholesale {
		t.Fatal("expected wholesale flag")
	}
}

func TestListProductsRetailOnlyHidesWholesale(t *testing.T) {
	t.Parallel()

	store := activeStore()
	product := tieredProduct(store.ID)
	svc := newTestService(t, store, pricing.DefaultModelConfig(), []models.Product{product})

	page, err := svc.ListProducts(context.Background(), store.Slug, products.ListFilters{}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	item := page.Items[0]
	if item.HasWholesale || !item.FromPrice.Equal(d("10.00")) {
		t.Fatalf("retail-only store must not advertise wholesale, got %+v", item)
	}
}

func TestListProductsSkipsInactive(t *testing.T) {
	t.Parallel()

	store := activeStore()
	active := tieredProduct(store.ID)
	inactive := tieredProduct(store.ID)
	inactive.IsActive = false
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, store, cfg, []models.Product{active, inactive})

	page, err := svc.ListProducts(context.Background(), store.Slug, products.ListFilters{}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != active.ID {
		t.Fatalf("expected only the active product, got %+v", page.Items)
	}
}

func TestGetProductDetailLadder(t *testing.T) {
	t.Parallel()

	store := activeStore()
	product := tieredProduct(store.ID)
	cfg := pricing.ModelConfig{Model: enums.PriceModelGradualWholesale, GradualWholesaleEnabled: true}
	svc := newTestService(t, store, cfg, []models.Product{product})

	detail, err := svc.GetProduct(context.Background(), store.Slug, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if len(detail.Tiers) != 2 {
		t.Fatalf("expected 2 ladder steps, got %d", len(detail.Tiers))
	}
	if detail.Tiers[0].DiscountPercent != 20 || detail.Tiers[1].DiscountPercent != 40 {
		t.Fatalf("unexpected ladder discounts %+v", detail.Tiers)
	}
	if detail.SKU != "CAM-001" {
		t.Fatalf("unexpected SKU %q", detail.SKU)
	}
}

func TestGetProductLegacyWholesaleDerivedTier(t *testing.T) {
	t.Parallel()

	store := activeStore()
	wholesale := d("7.00")
	minQty := 12
	product := models.Product{
		ID:              uuid.New(),
		StoreID:         store.ID,
		Name:            "Caneca",
		RetailPrice:     d("10.00"),
		WholesalePrice:  &wholesale,
		MinWholesaleQty: &minQty,
		IsActive:        true,
	}
	cfg := pricing.ModelConfig{Model: enums.PriceModelSimpleWholesale, SimpleWholesaleMinQty: 10}
	svc := newTestService(t, store, cfg, []models.Product{product})

	detail, err := svc.GetProduct(context.Background(), store.Slug, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if len(detail.Tiers) != 1 {
		t.Fatalf("expected derived tier, got %+v", detail.Tiers)
	}
	tier := detail.Tiers[0]
	if tier.TierName != pricing.LegacyTierName || tier.MinQuantity != 12 || tier.DiscountPercent != 30 {
		t.Fatalf("unexpected derived tier %+v", tier)
	}
}

func TestGetProductHidesInactive(t *testing.T) {
	t.Parallel()

	store := activeStore()
	product := tieredProduct(store.ID)
	product.IsActive = false
	svc := newTestService(t, store, pricing.DefaultModelConfig(), []models.Product{product})

	_, err := svc.GetProduct(context.Background(), store.Slug, product.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
