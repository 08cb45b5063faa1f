package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal type categories for recipes and week-plan slots.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Recipe is a named dish with per-person ingredient portions.
type Recipe struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	MealType  string         `gorm:"size:20;not null" json:"meal_type"`
	ImageURL  string         `gorm:"size:255" json:"image_url"`
	Portions  []RecipePortion `gorm:"constraint:OnDelete:CASCADE" json:"portions"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipePortion is the quantity of one ingredient one person consumes
// when the recipe is served. Duplicate (recipe, ingredient, person)
// rows are summed by the reporting engine, not deduplicated here.
type RecipePortion struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	PersonID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"person_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
}

func (p *RecipePortion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
