package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snack is a catalog item backed by a single ingredient with a default
// serving quantity.
type Snack struct {
	ID              uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	IngredientID    uuid.UUID      `gorm:"type:varchar(36);not null" json:"ingredient_id"`
	DefaultQuantity float64        `gorm:"not null;default:1" json:"default_quantity"`
}

func (s *Snack) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SnackLogEntry records whether a person actually consumed a snack on a
// given day. Only consumed entries contribute to totals and cost.
type SnackLogEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Date      time.Time `gorm:"type:date;not null;index;uniqueIndex:idx_snack_log_slot" json:"date"`
	PersonID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_snack_log_slot" json:"person_id"`
	SnackID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_snack_log_slot" json:"snack_id"`
	Consumed  bool      `gorm:"not null;default:false" json:"consumed"`
}

func (e *SnackLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
