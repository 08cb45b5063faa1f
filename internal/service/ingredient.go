package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
)

// IngredientService handles ingredient catalog operations
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns the full catalog ordered by name.
func (s *IngredientService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient retrieves an ingredient by ID
func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// CreateIngredient creates a new ingredient
func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// IngredientUpdate carries a partial update. Nil fields are left
// untouched; every provided value is applied, including zeros.
type IngredientUpdate struct {
	Name           *string  `json:"name"`
	Unit           *string  `json:"unit"`
	CostPerUnit    *float64 `json:"cost_per_unit"`
	KcalPerUnit    *float64 `json:"kcal_per_unit"`
	ProteinPerUnit *float64 `json:"protein_per_unit"`
	CarbsPerUnit   *float64 `json:"carbs_per_unit"`
	FatPerUnit     *float64 `json:"fat_per_unit"`
	PackSize       *float64 `json:"pack_size"`
	PackCost       *float64 `json:"pack_cost"`
}

func (u *IngredientUpdate) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Unit != nil {
		changes["unit"] = *u.Unit
	}
	if u.CostPerUnit != nil {
		changes["cost_per_unit"] = *u.CostPerUnit
	}
	if u.KcalPerUnit != nil {
		changes["kcal_per_unit"] = *u.KcalPerUnit
	}
	if u.ProteinPerUnit != nil {
		changes["protein_per_unit"] = *u.ProteinPerUnit
	}
	if u.CarbsPerUnit != nil {
		changes["carbs_per_unit"] = *u.CarbsPerUnit
	}
	if u.FatPerUnit != nil {
		changes["fat_per_unit"] = *u.FatPerUnit
	}
	if u.PackSize != nil {
		changes["pack_size"] = *u.PackSize
	}
	if u.PackCost != nil {
		changes["pack_cost"] = *u.PackCost
	}
	return changes
}

// UpdateIngredient applies the provided fields of update to an
// existing ingredient.
func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, update *IngredientUpdate) (*models.Ingredient, error) {
	if changes := update.changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetIngredient(ctx, id)
}

// DeleteIngredient deletes an ingredient
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&ingredient).Error
}
