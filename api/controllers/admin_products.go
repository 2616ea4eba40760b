package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/api/middleware"
	"github.com/b2xautomacao/catalogo-sub004/api/responses"
	"github.com/b2xautomacao/catalogo-sub004/api/validators"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
)

// TierRequest is one ladder step in a product payload.
type TierRequest struct {
	TierName    string          `json:"tierName" validate:"required"`
	TierType    string          `json:"tierType" validate:"omitempty,oneof=simple gradual"`
	MinQuantity int             `json:"minQuantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TierOrder   int             `json:"tierOrder" validate:"min=0"`
	IsActive    *bool           `json:"isActive"`
}

// ProductCreateRequest creates a catalog product.
type ProductCreateRequest struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"imageUrl"`

	RetailPrice     decimal.Decimal  `json:"retailPrice"`
	WholesalePrice  *decimal.Decimal `json:"wholesalePrice"`
	MinWholesaleQty *int             `json:"minWholesaleQty" validate:"omitempty,min=1"`
	Tiers           []TierRequest    `json:"tiers" validate:"dive"`

	IsActive *bool `json:"isActive"`
}

// ProductUpdateRequest patches a catalog product. Absent fields keep their
// stored values.
type ProductUpdateRequest struct {
	SKU         *string   `json:"sku"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	ImageURL    *string   `json:"imageUrl"`

	RetailPrice     *decimal.Decimal `json:"retailPrice"`
	WholesalePrice  *decimal.Decimal `json:"wholesalePrice"`
	MinWholesaleQty *int             `json:"minWholesaleQty" validate:"omitempty,min=1"`

	IsActive *bool `json:"isActive"`
}

// TiersReplaceRequest swaps a product's whole ladder.
type TiersReplaceRequest struct {
	Tiers []TierRequest `json:"tiers" validate:"dive"`
}

func tierInputs(reqs []TierRequest) []products.TierInput {
	tiers := make([]products.TierInput, 0, len(reqs))
	for _, req := range reqs {
		tierType := enums.TierTypeGradual
		if req.TierType != "" {
			tierType = enums.TierType(req.TierType)
		}
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		tiers = append(tiers, products.TierInput{
			TierName:    req.TierName,
			TierType:    tierType,
			MinQuantity: req.MinQuantity,
			UnitPrice:   req.UnitPrice,
			TierOrder:   req.TierOrder,
			IsActive:    active,
		})
	}
	return tiers
}

// ProductCreate registers a new product with its optional ladder.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		var payload ProductCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		product, err := svc.CreateProduct(r.Context(), storeID, products.CreateProductInput{
			SKU:             payload.SKU,
			Name:            payload.Name,
			Description:     payload.Description,
			Category:        payload.Category,
			Tags:            payload.Tags,
			ImageURL:        payload.ImageURL,
			RetailPrice:     payload.RetailPrice,
			WholesalePrice:  payload.WholesalePrice,
			MinWholesaleQty: payload.MinWholesaleQty,
			Tiers:           tierInputs(payload.Tiers),
			IsActive:        active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate patches an existing product.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ProductUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		product, err := svc.UpdateProduct(r.Context(), storeID, productID, products.UpdateProductInput{
			SKU:             payload.SKU,
			Name:            payload.Name,
			Description:     payload.Description,
			Category:        payload.Category,
			Tags:            payload.Tags,
			ImageURL:        payload.ImageURL,
			RetailPrice:     payload.RetailPrice,
			WholesalePrice:  payload.WholesalePrice,
			MinWholesaleQty: payload.MinWholesaleQty,
			IsActive:        payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product and its ladder.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		if err := svc.DeleteProduct(r.Context(), storeID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductGet returns one of the store's products.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		product, err := svc.GetProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductList pages through the store's products, inactive included.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		page, err := validators.QueryPagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := products.ListFilters{Query: r.URL.Query().Get("q")}
		if category := r.URL.Query().Get("category"); category != "" {
			filters.Category = &category
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		result, err := svc.ListProducts(r.Context(), storeID, filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductTiersReplace swaps the product's entire ladder.
func ProductTiersReplace(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload TiersReplaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID := middleware.StoreIDFromContext(r.Context())
		product, err := svc.ReplaceTiers(r.Context(), storeID, productID, tierInputs(payload.Tiers))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
