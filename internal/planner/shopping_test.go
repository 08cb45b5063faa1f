package planner

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListConsolidatesAcrossPersons(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")
	bob := src.addPerson("Bob")

	x := src.addIngredient(Ingredient{Name: "X", Unit: "item", CostPerUnit: 2.0})

	dinner := src.addRecipe()
	src.addPortion(dinner, x.ID, alice.ID, 3)
	src.addPortion(dinner, x.ID, bob.ID, 3)

	monday := date(2024, time.January, 1)
	thursday := monday.AddDate(0, 0, 3)
	src.plan(thursday, alice.ID, "dinner", &dinner)
	src.plan(thursday, bob.ID, "dinner", &dinner)

	list, err := New(src).ShoppingList(context.Background(), monday, WindowWed)
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "X", list[0].Ingredient)
	assert.Equal(t, 6.0, list[0].Quantity)
	assert.Equal(t, 12.0, list[0].Cost)
}

func TestShoppingListUnitPromotion(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	potato := src.addIngredient(Ingredient{Name: "Potato", Unit: "g", CostPerUnit: 0.001})
	carrot := src.addIngredient(Ingredient{Name: "Carrot", Unit: "g", CostPerUnit: 0.002})

	dinner := src.addRecipe()
	src.addPortion(dinner, potato.ID, alice.ID, 1500)
	src.addPortion(dinner, carrot.ID, alice.ID, 999)

	monday := date(2024, time.January, 1)
	src.plan(monday.AddDate(0, 0, 3), alice.ID, "dinner", &dinner)

	list, err := New(src).ShoppingList(context.Background(), monday, WindowWed)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Sorted by name: Carrot before Potato.
	assert.Equal(t, "Carrot", list[0].Ingredient)
	assert.Equal(t, 999.0, list[0].Quantity)
	assert.Equal(t, "g", list[0].Unit)

	assert.Equal(t, "Potato", list[1].Ingredient)
	assert.Equal(t, 1.5, list[1].Quantity)
	assert.Equal(t, "kg", list[1].Unit)
	// Cost is computed on the base-unit quantity, before promotion.
	assert.Equal(t, 1.5, list[1].Cost)
}

func TestShoppingListSplitsByWindow(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("A")

	rice := src.addIngredient(Ingredient{Name: "Rice", Unit: "g", CostPerUnit: 0.003})
	pasta := src.addIngredient(Ingredient{Name: "Pasta", Unit: "g", CostPerUnit: 0.002})

	wedDinner := src.addRecipe()
	src.addPortion(wedDinner, rice.ID, alice.ID, 200)
	monTea := src.addRecipe()
	src.addPortion(monTea, pasta.ID, alice.ID, 150)

	monday := date(2024, time.January, 1)
	wednesday := monday.AddDate(0, 0, 2)
	src.plan(wednesday, alice.ID, "dinner", &wedDinner)
	src.plan(monday, alice.ID, "dinner", &monTea)

	engine := New(src)
	ctx := context.Background()

	wed, err := engine.ShoppingList(ctx, monday, WindowWed)
	require.NoError(t, err)
	require.Len(t, wed, 1)
	assert.Equal(t, "Rice", wed[0].Ingredient)
	assert.Equal(t, 200.0, wed[0].Quantity)
	assert.Equal(t, "g", wed[0].Unit)
	assert.Equal(t, round2(0.003*200), wed[0].Cost)

	sun, err := engine.ShoppingList(ctx, monday, WindowSun)
	require.NoError(t, err)
	require.Len(t, sun, 1)
	assert.Equal(t, "Pasta", sun[0].Ingredient)
}

func TestShoppingListSortedByName(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("A")

	names := []string{"Zucchini", "Apple", "Milk", "Beef"}
	dinner := src.addRecipe()
	for _, name := range names {
		ing := src.addIngredient(Ingredient{Name: name, Unit: "item", CostPerUnit: 1})
		src.addPortion(dinner, ing.ID, alice.ID, 1)
	}

	monday := date(2024, time.January, 1)
	src.plan(monday.AddDate(0, 0, 4), alice.ID, "lunch", &dinner)

	list, err := New(src).ShoppingList(context.Background(), monday, WindowWed)
	require.NoError(t, err)
	require.Len(t, list, len(names))

	got := make([]string, len(list))
	for i, item := range list {
		got[i] = item.Ingredient
	}
	assert.True(t, sort.StringsAreSorted(got))
}

func TestShoppingListOmitsZeroQuantities(t *testing.T) {
	src := newFakeSource()
	alice := src.addPerson("Alice")

	rice := src.addIngredient(Ingredient{Name: "Rice", Unit: "g", CostPerUnit: 0.003})
	garnish := src.addIngredient(Ingredient{Name: "Garnish", Unit: "g", CostPerUnit: 0.01})

	dinner := src.addRecipe()
	src.addPortion(dinner, rice.ID, alice.ID, 200)
	src.addPortion(dinner, garnish.ID, alice.ID, 0)

	monday := date(2024, time.January, 1)
	src.plan(monday.AddDate(0, 0, 3), alice.ID, "dinner", &dinner)

	list, err := New(src).ShoppingList(context.Background(), monday, WindowWed)
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "Rice", list[0].Ingredient)
}

func TestShoppingListEmptyWeek(t *testing.T) {
	src := newFakeSource()
	src.addPerson("A")

	list, err := New(src).ShoppingList(context.Background(), date(2024, time.January, 1), WindowWed)
	require.NoError(t, err)
	assert.Empty(t, list)
}
