package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
)

// RecipeService handles recipe and portion operations
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes lists recipes, optionally filtered by meal type.
func (s *RecipeService) ListRecipes(ctx context.Context, mealType string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Preload("Portions").Order("name")
	if mealType != "" {
		query = query.Where("meal_type = ?", mealType)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe with its portions.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Portions").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe together with its portion rows.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// DeleteRecipe deletes a recipe and all its portions.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipePortion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// SetImageURL stores the uploaded photo location on the recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	return s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", url).Error
}
