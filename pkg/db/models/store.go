package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/b2xautomacao/catalogo-sub004/pkg/enums"
)

// Store represents the canonical tenant model. Each store owns a public
// catalog addressed by slug.
type Store struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string            `gorm:"column:slug;not null;uniqueIndex"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Phone       *string           `gorm:"column:phone"`
	Email       *string           `gorm:"column:email"`
	Status      enums.StoreStatus `gorm:"column:status;not null;default:'active'"`
	Categories  pq.StringArray    `gorm:"column:categories;type:text[]"`
	LogoURL     *string           `gorm:"column:logo_url"`
	BannerURL   *string           `gorm:"column:banner_url"`

	PricingSettings *PricingSettings `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
