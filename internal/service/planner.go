package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/planner"
)

// gormSource adapts the GORM store to the planner's batch read
// interface. Each method issues a single query.
type gormSource struct {
	db *gorm.DB
}

// NewPlannerSource returns a planner.DataSource backed by db.
func NewPlannerSource(db *gorm.DB) planner.DataSource {
	return &gormSource{db: db}
}

func (s *gormSource) People(ctx context.Context) ([]planner.Person, error) {
	var people []models.Person
	if err := s.db.WithContext(ctx).Find(&people).Error; err != nil {
		return nil, err
	}
	out := make([]planner.Person, len(people))
	for i, p := range people {
		out[i] = planner.Person{ID: p.ID, Name: p.Name}
	}
	return out, nil
}

func (s *gormSource) PlanEntries(ctx context.Context, from, to time.Time) ([]planner.PlanEntry, error) {
	var entries []models.WeekPlanEntry
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", planner.DateOf(from), planner.DateOf(to)).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	out := make([]planner.PlanEntry, len(entries))
	for i, e := range entries {
		out[i] = planner.PlanEntry{
			Date:     e.Date,
			PersonID: e.PersonID,
			MealType: e.MealType,
			RecipeID: e.RecipeID,
		}
	}
	return out, nil
}

func (s *gormSource) PortionsForRecipes(ctx context.Context, recipeIDs []uuid.UUID) ([]planner.Portion, error) {
	var portions []models.RecipePortion
	if err := s.db.WithContext(ctx).Where("recipe_id IN ?", recipeIDs).Find(&portions).Error; err != nil {
		return nil, err
	}
	out := make([]planner.Portion, len(portions))
	for i, p := range portions {
		out[i] = planner.Portion{
			RecipeID:     p.RecipeID,
			IngredientID: p.IngredientID,
			PersonID:     p.PersonID,
			Quantity:     p.Quantity,
		}
	}
	return out, nil
}

func (s *gormSource) SnackLog(ctx context.Context, from, to time.Time) ([]planner.SnackLogEntry, error) {
	var entries []models.SnackLogEntry
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", planner.DateOf(from), planner.DateOf(to)).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	out := make([]planner.SnackLogEntry, len(entries))
	for i, e := range entries {
		out[i] = planner.SnackLogEntry{
			Date:     e.Date,
			PersonID: e.PersonID,
			SnackID:  e.SnackID,
			Consumed: e.Consumed,
		}
	}
	return out, nil
}

func (s *gormSource) SnacksByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]planner.Snack, error) {
	var snacks []models.Snack
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&snacks).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]planner.Snack, len(snacks))
	for _, snack := range snacks {
		out[snack.ID] = planner.Snack{
			ID:              snack.ID,
			IngredientID:    snack.IngredientID,
			Name:            snack.Name,
			DefaultQuantity: snack.DefaultQuantity,
		}
	}
	return out, nil
}

func (s *gormSource) IngredientsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]planner.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]planner.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		out[ing.ID] = planner.Ingredient{
			ID:             ing.ID,
			Name:           ing.Name,
			Unit:           ing.Unit,
			CostPerUnit:    ing.CostPerUnit,
			KcalPerUnit:    ing.KcalPerUnit,
			ProteinPerUnit: ing.ProteinPerUnit,
			CarbsPerUnit:   ing.CarbsPerUnit,
			FatPerUnit:     ing.FatPerUnit,
		}
	}
	return out, nil
}

// summaryTTL keeps repeated dashboard polls from recomputing the whole
// week while staying fresh enough for the automation layer.
const summaryTTL = time.Minute

// SummaryService runs the reporting engine and caches the week summary
// in Redis. A nil cache disables caching.
type SummaryService struct {
	engine *planner.Engine
	cache  *redis.Client
}

func NewSummaryService(db *gorm.DB, cache *redis.Client) *SummaryService {
	return &SummaryService{
		engine: planner.New(NewPlannerSource(db)),
		cache:  cache,
	}
}

// CurrentWeekSummary returns the summary for the week containing
// today, served from cache when fresh.
func (s *SummaryService) CurrentWeekSummary(ctx context.Context) (*planner.WeekSummary, error) {
	weekStart := planner.WeekStart(time.Now())

	// The summary depends on both the summarized week and on today.
	key := fmt.Sprintf("week_summary:%s:%s",
		weekStart.Format("2006-01-02"), planner.DateOf(time.Now()).Format("2006-01-02"))

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached planner.WeekSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	summary, err := s.engine.WeekSummary(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, raw, summaryTTL).Err(); err != nil {
				log.Printf("Failed to cache week summary: %v", err)
			}
		}
	}
	return summary, nil
}

// WeekSummary computes the summary for an arbitrary week, bypassing
// the cache.
func (s *SummaryService) WeekSummary(ctx context.Context, weekStart time.Time) (*planner.WeekSummary, error) {
	return s.engine.WeekSummary(ctx, weekStart)
}

// ShoppingList returns one batch window's consolidated list.
func (s *SummaryService) ShoppingList(ctx context.Context, weekStart time.Time, window planner.Window) ([]planner.ShoppingItem, error) {
	return s.engine.ShoppingList(ctx, weekStart, window)
}
