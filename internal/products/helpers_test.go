package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

func mustCreateTestStore(t *testing.T, tx *gorm.DB) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:     uuid.New(),
		Slug:   fmt.Sprintf("loja-teste-%s", uuid.NewString()),
		Name:   "Loja Teste",
		Status: enums.StoreStatusActive,
	}
	if err := tx.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID uuid.UUID) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		StoreID:     storeID,
		SKU:         fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:        "Produto Teste",
		RetailPrice: decimal.RequireFromString("10.00"),
		IsActive:    true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
