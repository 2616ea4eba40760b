package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// StoreDTO is the API representation of a store.
type StoreDTO struct {
	ID          uuid.UUID         `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Email       *string           `json:"email,omitempty"`
	Status      enums.StoreStatus `json:"status"`
	Categories  []string          `json:"categories"`
	LogoURL     *string           `json:"logoUrl,omitempty"`
	BannerURL   *string           `json:"bannerUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// FromStoreModel maps a persisted store onto its DTO.
func FromStoreModel(store *models.Store) *StoreDTO {
	if store == nil {
		return nil
	}
	return &StoreDTO{
		ID:          store.ID,
		Slug:        store.Slug,
		Name:        store.Name,
		Description: store.Description,
		Phone:       store.Phone,
		Email:       store.Email,
		Status:      store.Status,
		Categories:  store.Categories,
		LogoURL:     store.LogoURL,
		BannerURL:   store.BannerURL,
		CreatedAt:   store.CreatedAt,
	}
}

// PricingSettingsDTO is the API representation of a store's price model
// configuration. It doubles as the cache payload.
type PricingSettingsDTO struct {
	StoreID uuid.UUID        `json:"storeId"`
	Model   enums.PriceModel `json:"priceModel"`

	SimpleWholesaleMinQty      int  `json:"simpleWholesaleMinQty"`
	SimpleWholesaleByCartTotal bool `json:"simpleWholesaleByCartTotal"`
	SimpleWholesaleCartMinQty  int  `json:"simpleWholesaleCartMinQty"`
	GradualWholesaleEnabled    bool `json:"gradualWholesaleEnabled"`

	MinimumPurchaseEnabled bool            `json:"minimumPurchaseEnabled"`
	MinimumPurchaseAmount  decimal.Decimal `json:"minimumPurchaseAmount"`
	MinimumPurchaseMessage *string         `json:"minimumPurchaseMessage,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// FromSettingsModel maps a persisted settings row onto its DTO.
func FromSettingsModel(settings *models.PricingSettings) *PricingSettingsDTO {
	if settings == nil {
		return nil
	}
	return &PricingSettingsDTO{
		StoreID:                    settings.StoreID,
		Model:                      settings.Model,
		SimpleWholesaleMinQty:      settings.SimpleWholesaleMinQty,
		SimpleWholesaleByCartTotal: settings.SimpleWholesaleByCartTotal,
		SimpleWholesaleCartMinQty:  settings.SimpleWholesaleCartMinQty,
		GradualWholesaleEnabled:    settings.GradualWholesaleEnabled,
		MinimumPurchaseEnabled:     settings.MinimumPurchaseEnabled,
		MinimumPurchaseAmount:      settings.MinimumPurchaseAmount,
		MinimumPurchaseMessage:     settings.MinimumPurchaseMessage,
		UpdatedAt:                  settings.UpdatedAt,
	}
}

// ToModelConfig converts the DTO into the engine's configuration type.
func (d *PricingSettingsDTO) ToModelConfig() pricing.ModelConfig {
	if d == nil {
		return pricing.DefaultModelConfig()
	}
	cfg := pricing.ModelConfig{
		Model:                      d.Model,
		SimpleWholesaleMinQty:      d.SimpleWholesaleMinQty,
		SimpleWholesaleByCartTotal: d.SimpleWholesaleByCartTotal,
		SimpleWholesaleCartMinQty:  d.SimpleWholesaleCartMinQty,
		GradualWholesaleEnabled:    d.GradualWholesaleEnabled,
		MinimumPurchaseEnabled:     d.MinimumPurchaseEnabled,
		MinimumPurchaseAmount:      d.MinimumPurchaseAmount,
	}
	if d.MinimumPurchaseMessage != nil {
		cfg.MinimumPurchaseMessage = *d.MinimumPurchaseMessage
	}
	if !cfg.Model.IsValid() {
		return pricing.DefaultModelConfig()
	}
	return cfg
}
