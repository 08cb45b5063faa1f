package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTotalsAccumulatesPortions(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")
	bob := src.addPerson("Bob")

	rice := src.addIngredient(Ingredient{
		Name: "Rice", Unit: "g",
		KcalPerUnit: 1.3, ProteinPerUnit: 0.03, CarbsPerUnit: 0.28, FatPerUnit: 0.003,
	})
	chicken := src.addIngredient(Ingredient{
		Name: "Chicken", Unit: "g",
		KcalPerUnit: 1.65, ProteinPerUnit: 0.31, CarbsPerUnit: 0, FatPerUnit: 0.036,
	})

	dinner := src.addRecipe()
	src.addPortion(dinner, rice.ID, alice.ID, 100)
	src.addPortion(dinner, chicken.ID, alice.ID, 150)
	src.addPortion(dinner, rice.ID, bob.ID, 200)

	monday := date(2024, time.January, 1)
	src.plan(monday, alice.ID, "dinner", &dinner)
	src.plan(monday, bob.ID, "dinner", &dinner)

	engine := New(src)
	totals, err := engine.DailyTotals(context.Background(), monday)
	require.NoError(t, err)

	require.Contains(t, totals, "Alice")
	require.Contains(t, totals, "Bob")

	assert.InDelta(t, 1.3*100+1.65*150, totals["Alice"].Kcal, 1e-9)
	assert.InDelta(t, 0.03*100+0.31*150, totals["Alice"].Protein, 1e-9)
	assert.InDelta(t, 1.3*200, totals["Bob"].Kcal, 1e-9)
	assert.InDelta(t, 0.28*200, totals["Bob"].Carbs, 1e-9)
}

func TestDailyTotalsOmitsPersonsWithoutContributions(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")
	src.addPerson("Idle")

	oats := src.addIngredient(Ingredient{Name: "Oats", Unit: "g", KcalPerUnit: 3.8})
	breakfast := src.addRecipe()
	src.addPortion(breakfast, oats.ID, alice.ID, 50)

	monday := date(2024, time.January, 1)
	src.plan(monday, alice.ID, "breakfast", &breakfast)

	totals, err := New(src).DailyTotals(context.Background(), monday)
	require.NoError(t, err)

	assert.Contains(t, totals, "Alice")
	assert.NotContains(t, totals, "Idle")
}

func TestDailyTotalsSumsDuplicatePortionRows(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")
	oats := src.addIngredient(Ingredient{Name: "Oats", Unit: "g", KcalPerUnit: 3.8})

	breakfast := src.addRecipe()
	src.addPortion(breakfast, oats.ID, alice.ID, 40)
	src.addPortion(breakfast, oats.ID, alice.ID, 20)

	monday := date(2024, time.January, 1)
	src.plan(monday, alice.ID, "breakfast", &breakfast)

	totals, err := New(src).DailyTotals(context.Background(), monday)
	require.NoError(t, err)
	assert.InDelta(t, 3.8*60, totals["Alice"].Kcal, 1e-9)
}

func TestNilRecipeEntryContributesNothing(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	monday := date(2024, time.January, 1)
	src.plan(monday, alice.ID, "lunch", nil)

	engine := New(src)
	totals, err := engine.DailyTotals(context.Background(), monday)
	require.NoError(t, err)
	assert.Empty(t, totals)

	cost, err := engine.DailyCost(context.Background(), monday)
	require.NoError(t, err)
	assert.Zero(t, cost)
}

func TestMissingReferencesAreSkipped(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	// Plan entry pointing at a recipe with no portions, a portion
	// pointing at an unknown ingredient, and a log entry pointing at
	// an unknown snack.
	ghostRecipe := src.addRecipe()
	withOrphan := src.addRecipe()
	src.addPortion(withOrphan, uuid.New(), alice.ID, 100)

	monday := date(2024, time.January, 1)
	src.plan(monday, alice.ID, "dinner", &ghostRecipe)
	src.plan(monday, alice.ID, "lunch", &withOrphan)
	src.logSnack(monday, alice.ID, uuid.New(), true)

	engine := New(src)
	totals, err := engine.DailyTotals(context.Background(), monday)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestSnackLogConsumedFlag(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	bar := src.addIngredient(Ingredient{
		Name: "Protein Bar", Unit: "item",
		CostPerUnit: 0.50, KcalPerUnit: 200, ProteinPerUnit: 20,
	})
	snack := src.addSnack("Protein Bar", bar.ID, 1)

	monday := date(2024, time.January, 1)
	tuesday := monday.AddDate(0, 0, 1)
	src.logSnack(monday, alice.ID, snack.ID, true)
	src.logSnack(tuesday, alice.ID, snack.ID, false)

	engine := New(src)

	cost, err := engine.DailyCost(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, 0.50, cost)

	totals, err := engine.DailyTotals(context.Background(), monday)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, totals["Alice"].Kcal, 1e-9)

	cost, err = engine.DailyCost(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Zero(t, cost)

	totals, err = engine.DailyTotals(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestWeeklyTotalsIsSumOfDailyTotals(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")
	bob := src.addPerson("Bob")

	oats := src.addIngredient(Ingredient{
		Name: "Oats", Unit: "g",
		CostPerUnit: 0.002, KcalPerUnit: 3.8, ProteinPerUnit: 0.13, CarbsPerUnit: 0.68, FatPerUnit: 0.065,
	})
	breakfast := src.addRecipe()
	src.addPortion(breakfast, oats.ID, alice.ID, 50)
	src.addPortion(breakfast, oats.ID, bob.ID, 80)

	monday := date(2024, time.January, 1)
	// Alice eats every day, Bob only twice.
	for offset := 0; offset < 7; offset++ {
		src.plan(monday.AddDate(0, 0, offset), alice.ID, "breakfast", &breakfast)
	}
	src.plan(monday, bob.ID, "breakfast", &breakfast)
	src.plan(monday.AddDate(0, 0, 4), bob.ID, "breakfast", &breakfast)

	engine := New(src)
	ctx := context.Background()

	weekly, err := engine.WeeklyTotals(ctx, monday)
	require.NoError(t, err)

	want := make(map[string]Totals)
	for offset := 0; offset < 7; offset++ {
		day, err := engine.DailyTotals(ctx, monday.AddDate(0, 0, offset))
		require.NoError(t, err)
		for name, t := range day {
			sum := want[name]
			sum.Kcal += t.Kcal
			sum.Protein += t.Protein
			sum.Carbs += t.Carbs
			sum.Fat += t.Fat
			want[name] = sum
		}
	}
	assert.Equal(t, want, weekly)

	assert.InDelta(t, 3.8*50*7, weekly["Alice"].Kcal, 1e-9)
	assert.InDelta(t, 3.8*80*2, weekly["Bob"].Kcal, 1e-9)
}

func TestDailyCostRoundsToTwoDecimals(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	tea := src.addIngredient(Ingredient{Name: "Tea", Unit: "item", CostPerUnit: 0.333})
	snack := src.addSnack("Tea", tea.ID, 1)

	monday := date(2024, time.January, 1)
	src.logSnack(monday, alice.ID, snack.ID, true)

	cost, err := New(src).DailyCost(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, 0.33, cost)
}
