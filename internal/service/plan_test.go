package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
)

func seedPlanFixtures(t *testing.T, db *gorm.DB) (models.Person, models.Recipe) {
	t.Helper()
	person := models.Person{Name: "Michael"}
	require.NoError(t, db.Create(&person).Error)
	recipe := models.Recipe{Name: "Chicken Curry", MealType: models.MealDinner}
	require.NoError(t, db.Create(&recipe).Error)
	return person, recipe
}

func TestBulkUpdateCreatesEntries(t *testing.T) {
	db := setupTestDB(t)
	person, recipe := seedPlanFixtures(t, db)
	svc := NewPlanService(db)
	ctx := context.Background()

	weekStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	count, err := svc.BulkUpdate(ctx, weekStart, []MealSelection{
		{Day: "Wed", MealType: "Dinner", Person: "Michael", RecipeName: "Chicken Curry"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := svc.WeekPlan(ctx, weekStart)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, person.ID, entry.PersonID)
	assert.Equal(t, "dinner", entry.MealType)
	require.NotNil(t, entry.RecipeID)
	assert.Equal(t, recipe.ID, *entry.RecipeID)
	assert.Equal(t, weekStart.AddDate(0, 0, 2), entry.Date.UTC())
}

func TestBulkUpdateIsIdempotentPerSlot(t *testing.T) {
	db := setupTestDB(t)
	seedPlanFixtures(t, db)
	svc := NewPlanService(db)
	ctx := context.Background()

	weekStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	sel := []MealSelection{
		{Day: "Mon", MealType: "Lunch", Person: "Michael", RecipeName: "Chicken Curry"},
	}

	_, err := svc.BulkUpdate(ctx, weekStart, sel)
	require.NoError(t, err)
	_, err = svc.BulkUpdate(ctx, weekStart, sel)
	require.NoError(t, err)

	entries, err := svc.WeekPlan(ctx, weekStart)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBulkUpdateClearsSlotOnBlankRecipe(t *testing.T) {
	db := setupTestDB(t)
	seedPlanFixtures(t, db)
	svc := NewPlanService(db)
	ctx := context.Background()

	weekStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.BulkUpdate(ctx, weekStart, []MealSelection{
		{Day: "Tue", MealType: "Dinner", Person: "Michael", RecipeName: "Chicken Curry"},
	})
	require.NoError(t, err)

	// The automation dropdown sends its placeholder to clear a slot.
	_, err = svc.BulkUpdate(ctx, weekStart, []MealSelection{
		{Day: "Tue", MealType: "Dinner", Person: "Michael", RecipeName: blankOption},
	})
	require.NoError(t, err)

	entries, err := svc.WeekPlan(ctx, weekStart)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].RecipeID)
}

func TestBulkUpdateSkipsUnknownNames(t *testing.T) {
	db := setupTestDB(t)
	seedPlanFixtures(t, db)
	svc := NewPlanService(db)
	ctx := context.Background()

	weekStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	count, err := svc.BulkUpdate(ctx, weekStart, []MealSelection{
		{Day: "Funday", MealType: "Dinner", Person: "Michael", RecipeName: "Chicken Curry"},
		{Day: "Mon", MealType: "Dinner", Person: "Stranger", RecipeName: "Chicken Curry"},
		{Day: "Mon", MealType: "Dinner", Person: "Michael", RecipeName: "Unknown Dish"},
	})
	require.NoError(t, err)
	assert.Zero(t, count)

	entries, err := svc.WeekPlan(ctx, weekStart)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWeekPlanOnlyReturnsRequestedWeek(t *testing.T) {
	db := setupTestDB(t)
	seedPlanFixtures(t, db)
	svc := NewPlanService(db)
	ctx := context.Background()

	week1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)

	_, err := svc.BulkUpdate(ctx, week1, []MealSelection{
		{Day: "Sun", MealType: "Dinner", Person: "Michael", RecipeName: "Chicken Curry"},
	})
	require.NoError(t, err)
	_, err = svc.BulkUpdate(ctx, week2, []MealSelection{
		{Day: "Mon", MealType: "Dinner", Person: "Michael", RecipeName: "Chicken Curry"},
	})
	require.NoError(t, err)

	entries, err := svc.WeekPlan(ctx, week1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, week1.AddDate(0, 0, 6), entries[0].Date.UTC())
}
