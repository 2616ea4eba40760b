package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	"github.com/b2xautomacao/catalogo-sub004/pkg/pagination"
)

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	store := mustCreateTestStore(t, tx)
	product := mustCreateTestProduct(t, tx, store.ID)

	if err := repo.ReplaceTiers(ctx, product.ID, []models.PriceTier{
		{
			StoreID:     store.ID,
			ProductID:   product.ID,
			TierName:    "Atacado 50+",
			TierType:    enums.TierTypeGradual,
			MinQuantity: 50,
			UnitPrice:   decimal.RequireFromString("6.00"),
			TierOrder:   1,
			IsActive:    true,
		},
		{
			StoreID:     store.ID,
			ProductID:   product.ID,
			TierName:    "Atacado 10+",
			TierType:    enums.TierTypeGradual,
			MinQuantity: 10,
			UnitPrice:   decimal.RequireFromString("8.00"),
			TierOrder:   0,
			IsActive:    true,
		},
	}); err != nil {
		t.Fatalf("replace tiers: %v", err)
	}

	loaded, err := repo.FindByStoreAndID(ctx, store.ID, product.ID)
	if err != nil {
		t.Fatalf("find by store and id: %v", err)
	}
	if len(loaded.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(loaded.Tiers))
	}
	// Preload orders by min_quantity regardless of insert order.
	if loaded.Tiers[0].MinQuantity != 10 || loaded.Tiers[1].MinQuantity != 50 {
		t.Fatalf("tiers out of order: %+v", loaded.Tiers)
	}

	if _, err := repo.FindByStoreAndID(ctx, uuid.New(), product.ID); err == nil {
		t.Fatal("expected miss for foreign store")
	}

	rows, err := repo.ListByStore(ctx, store.ID, ListFilters{OnlyActive: true}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list by store: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 product, got %d", len(rows))
	}

	if err := repo.ReplaceTiers(ctx, product.ID, nil); err != nil {
		t.Fatalf("clear tiers: %v", err)
	}
	tiers, err := repo.ListTiers(ctx, product.ID)
	if err != nil {
		t.Fatalf("list tiers: %v", err)
	}
	if len(tiers) != 0 {
		t.Fatalf("expected empty ladder, got %d tiers", len(tiers))
	}

	if err := repo.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := repo.FindByID(ctx, product.ID); err == nil {
		t.Fatal("expected product to be gone")
	}
}
