package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/b2xautomacao/catalogo-sub004/internal/cart"
	"github.com/b2xautomacao/catalogo-sub004/internal/pricing"
	storesvc "github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
)

type stubQuoteCart struct {
	result *cartsvc.QuoteResult
	err    error

	gotStoreID uuid.UUID
	gotInput   cartsvc.QuoteInput
}

func (s *stubQuoteCart) QuoteCart(ctx context.Context, storeID uuid.UUID, input cartsvc.QuoteInput) (*cartsvc.QuoteResult, error) {
	s.gotStoreID = storeID
	s.gotInput = input
	return s.result, s.err
}

type stubStoreLookup struct {
	store *storesvc.StoreDTO
	err   error
}

func (s stubStoreLookup) GetByID(ctx context.Context, id uuid.UUID) (*storesvc.StoreDTO, error) {
	return s.store, s.err
}

func (s stubStoreLookup) GetBySlug(ctx context.Context, slug string) (*storesvc.StoreDTO, error) {
	return s.store, s.err
}

func (s stubStoreLookup) GetPricingSettings(ctx context.Context, storeID uuid.UUID) pricing.ModelConfig {
	return pricing.DefaultModelConfig()
}

func (s stubStoreLookup) GetPricingSettingsDTO(ctx context.Context, storeID uuid.UUID) (*storesvc.PricingSettingsDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "not implemented")
}

func (s stubStoreLookup) UpdatePricingSettings(ctx context.Context, storeID uuid.UUID, input storesvc.UpdatePricingSettingsInput) (*storesvc.PricingSettingsDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "not implemented")
}

func quoteRequest(t *testing.T, slug string, body any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/catalog/%s/cart/quote", slug), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCartQuoteSuccess(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()

	cart := &stubQuoteCart{result: &cartsvc.QuoteResult{
		PriceModel: enums.PriceModelGradualWholesale,
		TotalItems: 10,
		Subtotal:   decimal.RequireFromString("80.00"),
	}}
	store := stubStoreLookup{store: &storesvc.StoreDTO{
		ID:     storeID,
		Slug:   "distribuidora-sol",
		Status: enums.StoreStatusActive,
	}}

	handler := CartQuote(cart, store, nil)

	req := quoteRequest(t, "distribuidora-sol", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 10}},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if cart.gotStoreID != storeID {
		t.Fatalf("quote used store %s, want %s", cart.gotStoreID, storeID)
	}
	if len(cart.gotInput.Items) != 1 || cart.gotInput.Items[0].Quantity != 10 {
		t.Fatalf("unexpected quote input: %+v", cart.gotInput)
	}

	var envelope struct {
		Data cartsvc.QuoteResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PriceModel != enums.PriceModelGradualWholesale {
		t.Fatalf("unexpected price model: %s", envelope.Data.PriceModel)
	}
	if !envelope.Data.Subtotal.Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("unexpected subtotal: %s", envelope.Data.Subtotal)
	}
}

func TestCartQuoteEmptyItems(t *testing.T) {
	cart := &stubQuoteCart{}
	store := stubStoreLookup{store: &storesvc.StoreDTO{ID: uuid.New()}}
	handler := CartQuote(cart, store, nil)

	req := quoteRequest(t, "distribuidora-sol", map[string]any{"items": []map[string]any{}})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected error code: %s", envelope.Error.Code)
	}
}

func TestCartQuoteStoreNotFound(t *testing.T) {
	cart := &stubQuoteCart{}
	store := stubStoreLookup{err: pkgerrors.New(pkgerrors.CodeNotFound, "store not found")}
	handler := CartQuote(cart, store, nil)

	req := quoteRequest(t, "loja-inexistente", map[string]any{
		"items": []map[string]any{{"productId": uuid.New(), "quantity": 1}},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartQuoteBelowMinimumRejection(t *testing.T) {
	rejection := pkgerrors.New(pkgerrors.CodeValidation, "cart does not reach the wholesale minimum").
		WithDetails(map[string]any{"rejectedItems": []cartsvc.RejectedLine{{
			ProductID:   uuid.New(),
			Quantity:    2,
			MinQuantity: 10,
			Reason:      "below_wholesale_minimum",
		}}})

	cart := &stubQuoteCart{err: rejection}
	store := stubStoreLookup{store: &storesvc.StoreDTO{ID: uuid.New()}}
	handler := CartQuote(cart, store, nil)

	req := quoteRequest(t, "atacado-central", map[string]any{
		"items": []map[string]any{{"productId": uuid.New(), "quantity": 2}},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				RejectedItems []cartsvc.RejectedLine `json:"rejectedItems"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Error.Details.RejectedItems) != 1 {
		t.Fatalf("expected 1 rejected item, got %d", len(envelope.Error.Details.RejectedItems))
	}
	if envelope.Error.Details.RejectedItems[0].MinQuantity != 10 {
		t.Fatalf("unexpected min quantity: %d", envelope.Error.Details.RejectedItems[0].MinQuantity)
	}
}
