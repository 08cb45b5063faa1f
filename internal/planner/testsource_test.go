package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// fakeSource is an in-memory DataSource for engine tests.
type fakeSource struct {
	people      []Person
	ingredients map[uuid.UUID]Ingredient
	portions    []Portion
	entries     []PlanEntry
	snacks      map[uuid.UUID]Snack
	log         []SnackLogEntry
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		ingredients: make(map[uuid.UUID]Ingredient),
		snacks:      make(map[uuid.UUID]Snack),
	}
}

func (f *fakeSource) addPerson(name string) Person {
	p := Person{ID: uuid.New(), Name: name}
	f.people = append(f.people, p)
	return p
}

func (f *fakeSource) addIngredient(ing Ingredient) Ingredient {
	ing.ID = uuid.New()
	f.ingredients[ing.ID] = ing
	return ing
}

func (f *fakeSource) addSnack(name string, ingredientID uuid.UUID, qty float64) Snack {
	s := Snack{ID: uuid.New(), IngredientID: ingredientID, Name: name, DefaultQuantity: qty}
	f.snacks[s.ID] = s
	return s
}

func (f *fakeSource) addRecipe() uuid.UUID {
	return uuid.New()
}

func (f *fakeSource) addPortion(recipe, ingredient, person uuid.UUID, qty float64) {
	f.portions = append(f.portions, Portion{
		RecipeID:     recipe,
		IngredientID: ingredient,
		PersonID:     person,
		Quantity:     qty,
	})
}

func (f *fakeSource) plan(day time.Time, person uuid.UUID, mealType string, recipe *uuid.UUID) {
	f.entries = append(f.entries, PlanEntry{
		Date:     day,
		PersonID: person,
		MealType: mealType,
		RecipeID: recipe,
	})
}

func (f *fakeSource) logSnack(day time.Time, person, snack uuid.UUID, consumed bool) {
	f.log = append(f.log, SnackLogEntry{
		Date:     day,
		PersonID: person,
		SnackID:  snack,
		Consumed: consumed,
	})
}

func inRange(day, from, to time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}

func (f *fakeSource) People(ctx context.Context) ([]Person, error) {
	return f.people, nil
}

func (f *fakeSource) PlanEntries(ctx context.Context, from, to time.Time) ([]PlanEntry, error) {
	var out []PlanEntry
	for _, e := range f.entries {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) PortionsForRecipes(ctx context.Context, recipeIDs []uuid.UUID) ([]Portion, error) {
	want := make(map[uuid.UUID]struct{}, len(recipeIDs))
	for _, id := range recipeIDs {
		want[id] = struct{}{}
	}
	var out []Portion
	for _, p := range f.portions {
		if _, ok := want[p.RecipeID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) SnackLog(ctx context.Context, from, to time.Time) ([]SnackLogEntry, error) {
	var out []SnackLogEntry
	for _, e := range f.log {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) SnacksByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snack, error) {
	out := make(map[uuid.UUID]Snack)
	for _, id := range ids {
		if s, ok := f.snacks[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeSource) IngredientsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Ingredient, error) {
	out := make(map[uuid.UUID]Ingredient)
	for _, id := range ids {
		if ing, ok := f.ingredients[id]; ok {
			out[id] = ing
		}
	}
	return out, nil
}
