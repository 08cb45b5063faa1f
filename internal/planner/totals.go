package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Totals is the per-person nutrition accumulator for a day or week.
// Values stay unrounded; rounding happens only when a summary is
// assembled.
type Totals struct {
	Kcal    float64
	Protein float64
	Carbs   float64
	Fat     float64
}

func (t *Totals) add(ing Ingredient, qty float64) {
	t.Kcal += ing.KcalPerUnit * qty
	t.Protein += ing.ProteinPerUnit * qty
	t.Carbs += ing.CarbsPerUnit * qty
	t.Fat += ing.FatPerUnit * qty
}

// contribution is one resolved (person, ingredient, quantity) triple
// for a day, from either a planned meal portion or a consumed snack.
type contribution struct {
	personID   uuid.UUID
	ingredient Ingredient
	quantity   float64
}

// dayContributions resolves everything consumed on one day. Plan
// entries with no recipe, and any reference that does not resolve, are
// skipped and contribute nothing.
func (e *Engine) dayContributions(ctx context.Context, day time.Time) ([]contribution, error) {
	day = DateOf(day)

	entries, err := e.src.PlanEntries(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("load plan entries: %w", err)
	}

	recipeSet := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		if entry.RecipeID != nil {
			recipeSet[*entry.RecipeID] = struct{}{}
		}
	}

	var portionIdx map[portionKey][]Portion
	if len(recipeSet) > 0 {
		recipeIDs := make([]uuid.UUID, 0, len(recipeSet))
		for id := range recipeSet {
			recipeIDs = append(recipeIDs, id)
		}
		portions, err := e.src.PortionsForRecipes(ctx, recipeIDs)
		if err != nil {
			return nil, fmt.Errorf("load portions: %w", err)
		}
		portionIdx = indexPortions(portions)
	}

	log, err := e.src.SnackLog(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("load snack log: %w", err)
	}

	var consumed []SnackLogEntry
	snackSet := make(map[uuid.UUID]struct{})
	for _, entry := range log {
		if !entry.Consumed {
			continue
		}
		consumed = append(consumed, entry)
		snackSet[entry.SnackID] = struct{}{}
	}

	snacks := map[uuid.UUID]Snack{}
	if len(snackSet) > 0 {
		snackIDs := make([]uuid.UUID, 0, len(snackSet))
		for id := range snackSet {
			snackIDs = append(snackIDs, id)
		}
		snacks, err = e.src.SnacksByID(ctx, snackIDs)
		if err != nil {
			return nil, fmt.Errorf("load snacks: %w", err)
		}
	}

	// One ingredient fetch covers both meals and snacks.
	ingredientSet := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}
		for _, p := range portionIdx[portionKey{recipe: *entry.RecipeID, person: entry.PersonID}] {
			ingredientSet[p.IngredientID] = struct{}{}
		}
	}
	for _, entry := range consumed {
		if snack, ok := snacks[entry.SnackID]; ok {
			ingredientSet[snack.IngredientID] = struct{}{}
		}
	}

	ingredients := map[uuid.UUID]Ingredient{}
	if len(ingredientSet) > 0 {
		ids := make([]uuid.UUID, 0, len(ingredientSet))
		for id := range ingredientSet {
			ids = append(ids, id)
		}
		ingredients, err = e.src.IngredientsByID(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load ingredients: %w", err)
		}
	}

	var result []contribution
	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}
		for _, p := range portionIdx[portionKey{recipe: *entry.RecipeID, person: entry.PersonID}] {
			ing, ok := ingredients[p.IngredientID]
			if !ok {
				continue
			}
			result = append(result, contribution{
				personID:   entry.PersonID,
				ingredient: ing,
				quantity:   p.Quantity,
			})
		}
	}
	for _, entry := range consumed {
		snack, ok := snacks[entry.SnackID]
		if !ok {
			continue
		}
		ing, ok := ingredients[snack.IngredientID]
		if !ok {
			continue
		}
		result = append(result, contribution{
			personID:   entry.PersonID,
			ingredient: ing,
			quantity:   snack.DefaultQuantity,
		})
	}
	return result, nil
}

// DailyTotals returns nutrition totals per person name for one day.
// Persons with no contributions are absent from the map; callers that
// need a stable row set union the result with the full person list
// themselves.
func (e *Engine) DailyTotals(ctx context.Context, day time.Time) (map[string]Totals, error) {
	people, err := e.src.People(ctx)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	names := make(map[uuid.UUID]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	contributions, err := e.dayContributions(ctx, day)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]Totals)
	for _, c := range contributions {
		name, ok := names[c.personID]
		if !ok {
			continue
		}
		t := totals[name]
		t.add(c.ingredient, c.quantity)
		totals[name] = t
	}
	return totals, nil
}

// WeeklyTotals sums the daily totals for the seven days starting at
// weekStart. A person missing on some days still accumulates across
// the days they appear on.
func (e *Engine) WeeklyTotals(ctx context.Context, weekStart time.Time) (map[string]Totals, error) {
	weekStart = DateOf(weekStart)
	totals := make(map[string]Totals)
	for offset := 0; offset < 7; offset++ {
		day, err := e.DailyTotals(ctx, weekStart.AddDate(0, 0, offset))
		if err != nil {
			return nil, err
		}
		for name, t := range day {
			sum := totals[name]
			sum.Kcal += t.Kcal
			sum.Protein += t.Protein
			sum.Carbs += t.Carbs
			sum.Fat += t.Fat
			totals[name] = sum
		}
	}
	return totals, nil
}

// DailyCost returns the total monetary cost of everything consumed on
// one day, across all persons, rounded to 2 decimal places.
func (e *Engine) DailyCost(ctx context.Context, day time.Time) (float64, error) {
	contributions, err := e.dayContributions(ctx, day)
	if err != nil {
		return 0, err
	}
	var cost float64
	for _, c := range contributions {
		cost += c.ingredient.CostPerUnit * c.quantity
	}
	return round2(cost), nil
}

// WeeklyCost sums the seven rounded daily costs starting at weekStart
// and rounds the result to 2 decimal places.
func (e *Engine) WeeklyCost(ctx context.Context, weekStart time.Time) (float64, error) {
	weekStart = DateOf(weekStart)
	var cost float64
	for offset := 0; offset < 7; offset++ {
		day, err := e.DailyCost(ctx, weekStart.AddDate(0, 0, offset))
		if err != nil {
			return 0, err
		}
		cost += day
	}
	return round2(cost), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round0(v float64) float64 {
	return math.Round(v)
}
