package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Units of measure for ingredients.
const (
	UnitGram       = "g"
	UnitMilliliter = "ml"
	UnitItem       = "item"
)

// Ingredient holds per-unit cost and nutrition values. All four
// nutrition fields are per single unit of the base unit (per gram,
// per millilitre or per item).
type Ingredient struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Name           string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Unit           string         `gorm:"size:10;not null;default:'g'" json:"unit"`
	CostPerUnit    float64        `gorm:"not null;default:0" json:"cost_per_unit"`
	KcalPerUnit    float64        `gorm:"not null;default:0" json:"kcal_per_unit"`
	ProteinPerUnit float64        `gorm:"not null;default:0" json:"protein_per_unit"`
	CarbsPerUnit   float64        `gorm:"not null;default:0" json:"carbs_per_unit"`
	FatPerUnit     float64        `gorm:"not null;default:0" json:"fat_per_unit"`
	// Pack size/cost are kept for the shopping UI; the reporting
	// engine does not read them.
	PackSize float64 `json:"pack_size"`
	PackCost float64 `json:"pack_cost"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
