package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeekPlanEntry assigns an optional recipe to a (date, person, meal type)
// slot. A nil RecipeID means no meal planned for that slot.
type WeekPlanEntry struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Date      time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_plan_slot" json:"date"`
	PersonID  uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_plan_slot" json:"person_id"`
	MealType  string     `gorm:"size:20;not null;uniqueIndex:idx_plan_slot" json:"meal_type"`
	RecipeID  *uuid.UUID `gorm:"type:varchar(36)" json:"recipe_id"`
}

func (e *WeekPlanEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
