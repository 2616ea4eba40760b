package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	FindSettingsByStore(ctx context.Context, storeID uuid.UUID) (*models.PricingSettings, error)
	UpsertSettings(ctx context.Context, settings *models.PricingSettings) error
}

type settingsCache interface {
	Get(ctx context.Context, storeID uuid.UUID) (*PricingSettingsDTO, bool, error)
	Set(ctx context.Context, dto *PricingSettingsDTO) error
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}

// Service exposes store and pricing-settings operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
	GetPricingSettings(ctx context.Context, storeID uuid.UUID) pricing.ModelConfig
	GetPricingSettingsDTO(ctx context.Context, storeID uuid.UUID) (*PricingSettingsDTO, error)
	UpdatePricingSettings(ctx context.Context, storeID uuid.UUID, input UpdatePricingSettingsInput) (*PricingSettingsDTO, error)
}

type service struct {
	repo  storeRepository
	cache settingsCache
	logg  *logger.Logger
}

// NewService builds a store service. The cache is optional; without it every
// settings read goes straight to the database.
func NewService(repo storeRepository, cache settingsCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

// UpdatePricingSettingsInput captures a full replacement of a store's price
// model configuration.
type UpdatePricingSettingsInput struct {
	Model enums.PriceModel

	SimpleWholesaleMinQty      int
	SimpleWholesaleByCartTotal bool
	SimpleWholesaleCartMinQty  int
	GradualWholesaleEnabled    bool

	MinimumPurchaseEnabled bool
	MinimumPurchaseAmount  decimal.Decimal
	MinimumPurchaseMessage *string
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromStoreModel(store), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store by slug")
	}
	return FromStoreModel(store), nil
}

// GetPricingSettings resolves the store's price model configuration. It
// never fails: missing rows, cache outages, and DB errors all degrade to the
// retail-only default so catalog and quote reads keep working.
func (s *service) GetPricingSettings(ctx context.Context, storeID uuid.UUID) pricing.ModelConfig {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, storeID)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache read failed")
		} else if hit {
			return cached.ToModelConfig()
		}
	}

	settings, err := s.repo.FindSettingsByStore(ctx, storeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "load pricing settings failed, using retail default")
		}
		return pricing.DefaultModelConfig()
	}

	dto := FromSettingsModel(settings)
	if s.cache != nil {
		if err := s.cache.Set(ctx, dto); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache write failed")
		}
	}
	return dto.ToModelConfig()
}

// GetPricingSettingsDTO returns the stored configuration for admin reads. A
// store without a row gets the implicit retail-only defaults.
func (s *service) GetPricingSettingsDTO(ctx context.Context, storeID uuid.UUID) (*PricingSettingsDTO, error) {
	if _, err := s.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	settings, err := s.repo.FindSettingsByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &PricingSettingsDTO{
				StoreID: storeID,
				Model:   enums.PriceModelRetailOnly,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing settings")
	}
	return FromSettingsModel(settings), nil
}

func (s *service) UpdatePricingSettings(ctx context.Context, storeID uuid.UUID, input UpdatePricingSettingsInput) (*PricingSettingsDTO, error) {
	if err := validateSettingsInput(input); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	settings := &models.PricingSettings{
		StoreID:                    storeID,
		Model:                      input.Model,
		SimpleWholesaleMinQty:      input.SimpleWholesaleMinQty,
		SimpleWholesaleByCartTotal: input.SimpleWholesaleByCartTotal,
		SimpleWholesaleCartMinQty:  input.SimpleWholesaleCartMinQty,
		GradualWholesaleEnabled:    input.GradualWholesaleEnabled,
		MinimumPurchaseEnabled:     input.MinimumPurchaseEnabled,
		MinimumPurchaseAmount:      input.MinimumPurchaseAmount,
		MinimumPurchaseMessage:     input.MinimumPurchaseMessage,
	}
	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save pricing settings")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, storeID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache invalidation failed")
		}
	}
	return FromSettingsModel(settings), nil
}

func validateSettingsInput(input UpdatePricingSettingsInput) error {
	if !input.Model.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown price model %q", input.Model))
	}

	if input.Model == enums.PriceModelSimpleWholesale {
		if input.SimpleWholesaleByCartTotal {
			if input.SimpleWholesaleCartMinQty < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart-total mode requires a cart minimum quantity of at least 1")
			}
		} else if input.SimpleWholesaleMinQty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "simple wholesale requires a minimum quantity of at least 1")
		}
	}

	if input.MinimumPurchaseEnabled && !input.MinimumPurchaseAmount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum purchase amount must be positive when enabled")
	}
	if input.MinimumPurchaseAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum purchase amount cannot be negative")
	}
	return nil
}
