package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/api/responses"
	"github.com/b2xautomacao/catalogo-sub004/api/validators"
	"github.com/b2xautomacao/catalogo-sub004/internal/cart"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
)

// QuoteCartRequest is the public quote payload.
type QuoteCartRequest struct {
	Items []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteItemRequest is one requested line. The optional originalPrice is the
// retail snapshot taken when the line entered the cart.
type QuoteItemRequest struct {
	ProductID     uuid.UUID        `json:"productId" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,min=1"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
}

// CartQuote prices a cart against the store addressed by slug.
func CartQuote(cartSvc cart.Service, storeSvc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cartSvc == nil || storeSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		slug, err := validators.PathSlug(r, "slug")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload QuoteCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithStoreSlug(ctx, slug)
		}

		input := cart.QuoteInput{Items: make([]cart.QuoteItemInput, 0, len(payload.Items))}
		for _, item := range payload.Items {
			input.Items = append(input.Items, cart.QuoteItemInput{
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				OriginalPrice: item.OriginalPrice,
			})
		}

		result, err := cartSvc.QuoteCart(ctx, store.ID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
