package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Package is a purchasable charter experience template.
type Package struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Slug           string          `gorm:"uniqueIndex;not null" json:"slug"`
	Name           string          `gorm:"not null" json:"name"`
	Tagline        string          `json:"tagline,omitempty"`
	Description    string          `gorm:"not null" json:"description"`
	Duration       string          `gorm:"not null" json:"duration"`
	PricePerPerson decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerPerson"`
	MinGuests      int             `gorm:"not null;default:1" json:"minGuests"`
	MaxGuests      int             `gorm:"not null;default:12" json:"maxGuests"`
	Category       string          `gorm:"not null" json:"category"`
	Highlights     pq.StringArray  `gorm:"type:text[]" json:"highlights,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`
	IsFeatured     bool            `gorm:"not null;default:false" json:"isFeatured"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
