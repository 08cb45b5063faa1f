package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/planner"
)

// blankOption is the placeholder the automation dropdowns send for an
// empty slot.
const blankOption = "—"

var dayOffsets = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// MealSelection is one slot of a bulk week-plan update, keyed by the
// display names the automation layer works with.
type MealSelection struct {
	Day        string `json:"day" binding:"required"`
	MealType   string `json:"meal_type" binding:"required"`
	Person     string `json:"person" binding:"required"`
	RecipeName string `json:"recipe_name"`
}

// PlanService handles week-plan reads and the name-keyed bulk upsert
// the automation layer pushes.
type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// WeekPlan returns all entries for the week starting at weekStart.
func (s *PlanService) WeekPlan(ctx context.Context, weekStart time.Time) ([]models.WeekPlanEntry, error) {
	weekStart = planner.DateOf(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var entries []models.WeekPlanEntry
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", weekStart, weekEnd).
		Order("date").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// BulkUpdate upserts one week-plan row per selection, keyed by
// (date, person, meal type). Selections naming an unknown day, person
// or recipe are skipped, matching the tolerant contract the automation
// layer expects. Returns the number of rows written.
func (s *PlanService) BulkUpdate(ctx context.Context, weekStart time.Time, selections []MealSelection) (int, error) {
	weekStart = planner.DateOf(weekStart)

	personIDs, err := s.personIDsByName(ctx)
	if err != nil {
		return 0, err
	}
	recipeIDs, err := s.recipeIDsByName(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sel := range selections {
			offset, ok := dayOffsets[strings.ToLower(sel.Day)]
			if !ok {
				continue
			}
			personID, ok := personIDs[strings.ToLower(sel.Person)]
			if !ok {
				continue
			}

			var recipeID *uuid.UUID
			if sel.RecipeName != "" && sel.RecipeName != blankOption {
				id, ok := recipeIDs[strings.ToLower(sel.RecipeName)]
				if !ok {
					continue
				}
				recipeID = &id
			}

			date := weekStart.AddDate(0, 0, offset)
			mealType := strings.ToLower(sel.MealType)

			var entry models.WeekPlanEntry
			err := tx.Where("date = ? AND person_id = ? AND meal_type = ?", date, personID, mealType).
				First(&entry).Error
			switch {
			case err == nil:
				if err := tx.Model(&entry).Update("recipe_id", recipeID).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				entry = models.WeekPlanEntry{
					Date:     date,
					PersonID: personID,
					MealType: mealType,
					RecipeID: recipeID,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			default:
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *PlanService) personIDsByName(ctx context.Context) (map[string]uuid.UUID, error) {
	var people []models.Person
	if err := s.db.WithContext(ctx).Find(&people).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(people))
	for _, p := range people {
		ids[strings.ToLower(p.Name)] = p.ID
	}
	return ids, nil
}

func (s *PlanService) recipeIDsByName(ctx context.Context) (map[string]uuid.UUID, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(recipes))
	for _, r := range recipes {
		ids[strings.ToLower(r.Name)] = r.ID
	}
	return ids, nil
}
