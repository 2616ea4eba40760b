package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
)

// Repository handles store and pricing-settings persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySlug loads a store by its public catalog slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindSettingsByStore loads the pricing settings row for a store.
func (r *Repository) FindSettingsByStore(ctx context.Context, storeID uuid.UUID) (*models.PricingSettings, error) {
	var settings models.PricingSettings
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings inserts or replaces the pricing settings row for the
// settings' store. Each store owns at most one row.
func (r *Repository) UpsertSettings(ctx context.Context, settings *models.PricingSettings) error {
	if settings == nil {
		return fmt.Errorf("settings are required")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
