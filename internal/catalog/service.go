package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/pagination"
)

type storeResolver interface {
	GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error)
	GetPricingSettings(ctx context.Context, storeID uuid.UUID) pricing.ModelConfig
}

type productReader interface {
	ListByStore(ctx context.Context, storeID uuid.UUID, filters products.ListFilters, page pagination.Params) ([]models.Product, error)
	FindByStoreAndID(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
}

// Service is the public, read-only catalog surface addressed by store slug.
type Service interface {
	GetStorefront(ctx context.Context, slug string) (*StorefrontDTO, error)
	ListProducts(ctx context.Context, slug string, filters products.ListFilters, page pagination.Params) (*Page, error)
	GetProduct(ctx context.Context, slug string, productID uuid.UUID) (*ProductDTO, error)
}

type service struct {
	stores   storeResolver
	products productReader
}

// NewService builds the public catalog service.
func NewService(storeSvc storeResolver, productRepo productReader) (Service, error) {
	if storeSvc == nil {
		return nil, fmt.Errorf("store resolver required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{stores: storeSvc, products: productRepo}, nil
}

func (s *service) GetStorefront(ctx context.Context, slug string) (*StorefrontDTO, error) {
	store, cfg, err := s.resolveStore(ctx, slug)
	if err != nil {
		return nil, err
	}
	return storefrontFromStore(store, cfg), nil
}

func (s *service) ListProducts(ctx context.Context, slug string, filters products.ListFilters, page pagination.Params) (*Page, error) {
	store, cfg, err := s.resolveStore(ctx, slug)
	if err != nil {
		return nil, err
	}

	filters.OnlyActive = true
	rows, err := s.products.ListByStore(ctx, store.ID, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog products")
	}

	rows, hasMore := pagination.TrimPage(rows, page.Limit)
	result := &Page{
		Items:   make([]ItemDTO, 0, len(rows)),
		HasMore: hasMore,
	}
	for i := range rows {
		result.Items = append(result.Items, itemFromProduct(&rows[i], visibleTiers(cfg, &rows[i])))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, slug string, productID uuid.UUID) (*ProductDTO, error) {
	store, cfg, err := s.resolveStore(ctx, slug)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByStoreAndID(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load catalog product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	tiers := visibleTiers(cfg, product)
	return &ProductDTO{
		ItemDTO:     itemFromProduct(product, tiers),
		Description: product.Description,
		SKU:         product.SKU,
		Tiers:       tierDTOs(product.RetailPrice, tiers),
	}, nil
}

// resolveStore loads the store by slug and hides suspended storefronts.
func (s *service) resolveStore(ctx context.Context, slug string) (*stores.StoreDTO, pricing.ModelConfig, error) {
	store, err := s.stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, pricing.ModelConfig{}, err
	}
	if store.Status != enums.StoreStatusActive {
		return nil, pricing.ModelConfig{}, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return store, s.stores.GetPricingSettings(ctx, store.ID), nil
}

// visibleTiers returns the ladder shoppers can actually reach under the
// store's active price model. Retail-only stores advertise no wholesale,
// and a disabled gradual flag hides the persisted ladder.
func visibleTiers(cfg pricing.ModelConfig, product *models.Product) []pricing.Tier {
	switch cfg.Model {
	case enums.PriceModelRetailOnly:
		return nil
	case enums.PriceModelGradualWholesale:
		if !cfg.GradualWholesaleEnabled {
			return nil
		}
	}
	p := products.PricingFromModel(product)
	if p.MinWholesaleQty == nil && p.WholesalePrice != nil && cfg.SimpleWholesaleMinQty > 0 {
		qty := cfg.SimpleWholesaleMinQty
		p.MinWholesaleQty = &qty
	}
	return pricing.EffectiveTiers(p)
}
