package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property is a warehouse/office listing shown on the marketing site
type Property struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	County      string         `json:"county"`
	Address     string         `json:"address"`
	SizeSqft    int            `json:"size_sqft"`
	Price       float64        `json:"price"`
	PriceUnit   string         `json:"price_unit" gorm:"default:'per_sqft_year'"`
	PhotoURL    string         `json:"photo_url"`
	IsListed    bool           `json:"is_listed" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
