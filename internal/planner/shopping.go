package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ShoppingItem is one consolidated row of a batch-cook shopping list.
type ShoppingItem struct {
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Cost       float64 `json:"cost"`
}

// ShoppingList consolidates ingredient quantities for every planned
// meal of the week starting at weekStart whose (date, meal type) slot
// falls in the requested window. Quantities are summed across all
// persons and days, priced at cost_per_unit, promoted from grams to
// kilograms at 1000 and sorted by ingredient name. Ingredients with no
// accumulated quantity are omitted.
func (e *Engine) ShoppingList(ctx context.Context, weekStart time.Time, window Window) ([]ShoppingItem, error) {
	weekStart = DateOf(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	entries, err := e.src.PlanEntries(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("load plan entries: %w", err)
	}

	recipeSet := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		if entry.RecipeID != nil && InWindow(entry.Date, entry.MealType, window) {
			recipeSet[*entry.RecipeID] = struct{}{}
		}
	}
	if len(recipeSet) == 0 {
		return []ShoppingItem{}, nil
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipeSet))
	for id := range recipeSet {
		recipeIDs = append(recipeIDs, id)
	}
	portions, err := e.src.PortionsForRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load portions: %w", err)
	}
	portionIdx := indexPortions(portions)

	quantities := make(map[uuid.UUID]float64)
	for _, entry := range entries {
		if entry.RecipeID == nil || !InWindow(entry.Date, entry.MealType, window) {
			continue
		}
		for _, p := range portionIdx[portionKey{recipe: *entry.RecipeID, person: entry.PersonID}] {
			quantities[p.IngredientID] += p.Quantity
		}
	}

	ingredientIDs := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ingredientIDs = append(ingredientIDs, id)
	}
	ingredients := map[uuid.UUID]Ingredient{}
	if len(ingredientIDs) > 0 {
		ingredients, err = e.src.IngredientsByID(ctx, ingredientIDs)
		if err != nil {
			return nil, fmt.Errorf("load ingredients: %w", err)
		}
	}

	list := make([]ShoppingItem, 0, len(quantities))
	for id, total := range quantities {
		ing, ok := ingredients[id]
		if !ok || total == 0 {
			continue
		}

		cost := ing.CostPerUnit * total

		qty := total
		unit := ing.Unit
		if unit == "g" && total >= 1000 {
			qty = total / 1000
			unit = "kg"
		}

		list = append(list, ShoppingItem{
			Ingredient: ing.Name,
			Quantity:   round2(qty),
			Unit:       unit,
			Cost:       round2(cost),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Ingredient < list[j].Ingredient
	})
	return list, nil
}
