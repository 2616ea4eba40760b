package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/api/middleware"
	"github.com/b2xautomacao/catalogo-sub004/api/responses"
	"github.com/b2xautomacao/catalogo-sub004/api/validators"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
)

// PricingSettingsRequest replaces the store's price model configuration.
type PricingSettingsRequest struct {
	PriceModel string `json:"priceModel" validate:"required,oneof=retail_only wholesale_only simple_wholesale gradual_wholesale"`

	SimpleWholesaleMinQty      int  `json:"simpleWholesaleMinQty" validate:"min=0"`
	SimpleWholesaleByCartTotal bool `json:"simpleWholesaleByCartTotal"`
	SimpleWholesaleCartMinQty  int  `json:"simpleWholesaleCartMinQty" validate:"min=0"`
	GradualWholesaleEnabled    bool `json:"gradualWholesaleEnabled"`

	MinimumPurchaseEnabled bool            `json:"minimumPurchaseEnabled"`
	MinimumPurchaseAmount  decimal.Decimal `json:"minimumPurchaseAmount"`
	MinimumPurchaseMessage *string         `json:"minimumPurchaseMessage"`
}

// PricingSettingsGet returns the store's stored configuration.
func PricingSettingsGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stores service unavailable"))
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		settings, err := svc.GetPricingSettingsDTO(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// PricingSettingsUpdate replaces the store's configuration wholesale.
func PricingSettingsUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stores service unavailable"))
			return
		}

		var payload PricingSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		model, err := enums.ParsePriceModel(payload.PriceModel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price model"))
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		settings, err := svc.UpdatePricingSettings(r.Context(), storeID, stores.UpdatePricingSettingsInput{
			Model:                      model,
			SimpleWholesaleMinQty:      payload.SimpleWholesaleMinQty,
			SimpleWholesaleByCartTotal: payload.SimpleWholesaleByCartTotal,
			SimpleWholesaleCartMinQty:  payload.SimpleWholesaleCartMinQty,
			GradualWholesaleEnabled:    payload.GradualWholesaleEnabled,
			MinimumPurchaseEnabled:     payload.MinimumPurchaseEnabled,
			MinimumPurchaseAmount:      payload.MinimumPurchaseAmount,
			MinimumPurchaseMessage:     payload.MinimumPurchaseMessage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
