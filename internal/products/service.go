package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/b2xautomacao/catalogo-sub004/pkg/db"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db/models"
	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
	pkgerrors "github.com/b2xautomacao/catalogo-sub004/pkg/errors"
	"github.com/b2xautomacao/catalogo-sub004/pkg/pagination"
)

// Service exposes product management operations for store admins.
type Service interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, storeID uuid.UUID, filters ListFilters, page pagination.Params) (*ProductListResult, error)
	ReplaceTiers(ctx context.Context, storeID, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error)
}

// TierInput defines one ladder step at the write boundary.
type TierInput struct {
	TierName    string
	TierType    enums.TierType
	MinQuantity int
	UnitPrice   decimal.Decimal
	TierOrder   int
	IsActive    bool
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	Category    *string
	Tags        []string
	ImageURL    *string

	RetailPrice     decimal.Decimal
	WholesalePrice  *decimal.Decimal
	MinWholesaleQty *int
	Tiers           []TierInput

	IsActive bool
}

// UpdateProductInput holds optional mutation values for a product. Nil
// fields keep their stored value.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	Category    *string
	Tags        *[]string
	ImageURL    *string

	RetailPrice     *decimal.Decimal
	WholesalePrice  *decimal.Decimal
	MinWholesaleQty *int

	IsActive *bool
}

// ProductListResult is one page of products plus the follow-up cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"nextCursor,omitempty"`
	HasMore    bool         `json:"hasMore"`
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	storeRepo storeLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, storeRepo storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, dbClient: dbClient, storeRepo: storeRepo}, nil
}

func (s *service) CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.RetailPrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retail price must be positive")
	}
	if err := validateLegacyWholesale(input.RetailPrice, input.WholesalePrice, input.MinWholesaleQty); err != nil {
		return nil, err
	}
	if err := validateTierLadder(input.RetailPrice, input.Tiers); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			StoreID:         storeID,
			SKU:             input.SKU,
			Name:            input.Name,
			Description:     input.Description,
			Category:        input.Category,
			Tags:            input.Tags,
			ImageURL:        input.ImageURL,
			RetailPrice:     input.RetailPrice,
			WholesalePrice:  input.WholesalePrice,
			MinWholesaleQty: input.MinWholesaleQty,
			IsActive:        input.IsActive,
		}
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if len(input.Tiers) > 0 {
			if err := txRepo.ReplaceTiers(ctx, created.ID, buildTierRows(storeID, created.ID, input.Tiers)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert price tiers")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, storeID, createdID)
}

func (s *service) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.RetailPrice != nil {
		if !input.RetailPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retail price must be positive")
		}
		product.RetailPrice = *input.RetailPrice
	}
	if input.WholesalePrice != nil {
		product.WholesalePrice = input.WholesalePrice
	}
	if input.MinWholesaleQty != nil {
		product.MinWholesaleQty = input.MinWholesaleQty
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateLegacyWholesale(product.RetailPrice, product.WholesalePrice, product.MinWholesaleQty); err != nil {
		return nil, err
	}
	// A retail price change can invalidate the stored ladder.
	if err := validateTierLadder(product.RetailPrice, tierInputsFromModels(product.Tiers)); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return s.GetProduct(ctx, storeID, productID)
}

func (s *service) DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, storeID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, storeID uuid.UUID, filters ListFilters, page pagination.Params) (*ProductListResult, error) {
	if err := s.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStore(ctx, storeID, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	rows, hasMore := pagination.TrimPage(rows, page.Limit)
	result := &ProductListResult{
		Products: make([]ProductDTO, 0, len(rows)),
		HasMore:  hasMore,
	}
	for i := range rows {
		result.Products = append(result.Products, *NewProductDTO(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) ReplaceTiers(ctx context.Context, storeID, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if err := validateTierLadder(product.RetailPrice, tiers); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceTiers(ctx, productID, buildTierRows(storeID, productID, tiers))
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace price tiers")
	}
	return s.GetProduct(ctx, storeID, productID)
}

func (s *service) ensureStore(ctx context.Context, storeID uuid.UUID) error {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByStoreAndID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func buildTierRows(storeID, productID uuid.UUID, tiers []TierInput) []models.PriceTier {
	rows := make([]models.PriceTier, 0, len(tiers))
	for _, tier := range tiers {
		rows = append(rows, models.PriceTier{
			StoreID:     storeID,
			ProductID:   productID,
			TierName:    tier.TierName,
			TierType:    tier.TierType,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			TierOrder:   tier.TierOrder,
			IsActive:    tier.IsActive,
		})
	}
	return rows
}

func tierInputsFromModels(tiers []models.PriceTier) []TierInput {
	inputs := make([]TierInput, 0, len(tiers))
	for _, tier := range tiers {
		inputs = append(inputs, TierInput{
			TierName:    tier.TierName,
			TierType:    tier.TierType,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			TierOrder:   tier.TierOrder,
			IsActive:    tier.IsActive,
		})
	}
	return inputs
}

// validateLegacyWholesale checks the single-step wholesale fields. Both must
// travel together, the quantity must be at least 1, and the price must
// undercut retail.
func validateLegacyWholesale(retail decimal.Decimal, wholesale *decimal.Decimal, minQty *int) error {
	if wholesale == nil {
		return nil
	}
	if !wholesale.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "wholesale price must be positive")
	}
	if wholesale.GreaterThanOrEqual(retail) {
		return pkgerrors.New(pkgerrors.CodeValidation, "wholesale price must be below the retail price")
	}
	if minQty != nil && *minQty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum wholesale quantity must be at least 1")
	}
	return nil
}

// validateTierLadder enforces ladder consistency at the write boundary:
// strictly increasing quantities, non-increasing unit prices, and every
// price below retail. Inactive steps are skipped, matching what the engine
// will see at read time.
func validateTierLadder(retail decimal.Decimal, tiers []TierInput) error {
	seen := make(map[int]bool, len(tiers))
	var prev *TierInput
	for i := range tiers {
		tier := tiers[i]
		if strings.TrimSpace(tier.TierName) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier name is required")
		}
		if !tier.TierType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown tier type %q", tier.TierType))
		}
		if tier.MinQuantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier minimum quantity must be at least 1")
		}
		if seen[tier.MinQuantity] {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate tier minimum quantity %d", tier.MinQuantity))
		}
		seen[tier.MinQuantity] = true
		if !tier.UnitPrice.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier unit price must be positive")
		}
		if tier.UnitPrice.GreaterThanOrEqual(retail) {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier unit price must be below the retail price")
		}
		if !tier.IsActive {
			continue
		}
		if prev != nil {
			if tier.MinQuantity < prev.MinQuantity {
				return pkgerrors.New(pkgerrors.CodeValidation, "tiers must be ordered by ascending minimum quantity")
			}
			if tier.UnitPrice.GreaterThan(prev.UnitPrice) {
				return pkgerrors.New(pkgerrors.CodeValidation, "tier unit prices cannot increase with quantity")
			}
		}
		prev = &tiers[i]
	}
	return nil
}
