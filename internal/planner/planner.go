// Package planner is the aggregation and reporting engine. It turns the
// stored week plan, recipe portions and snack log into per-person
// nutrition totals, daily/weekly cost and the two batch-cook shopping
// lists. The engine holds no state of its own; every call reads a
// snapshot through a DataSource and returns a value.
package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Person is a household member as seen by the engine.
type Person struct {
	ID   uuid.UUID
	Name string
}

// Ingredient carries the per-unit cost and nutrition values the engine
// multiplies portion quantities against.
type Ingredient struct {
	ID             uuid.UUID
	Name           string
	Unit           string
	CostPerUnit    float64
	KcalPerUnit    float64
	ProteinPerUnit float64
	CarbsPerUnit   float64
	FatPerUnit     float64
}

// Portion is one ingredient quantity for one person in one recipe.
type Portion struct {
	RecipeID     uuid.UUID
	IngredientID uuid.UUID
	PersonID     uuid.UUID
	Quantity     float64
}

// PlanEntry is a week-plan slot. A nil RecipeID means no meal planned
// and contributes nothing.
type PlanEntry struct {
	Date     time.Time
	PersonID uuid.UUID
	MealType string
	RecipeID *uuid.UUID
}

// Snack is a catalog snack with its backing ingredient and default
// serving quantity.
type Snack struct {
	ID              uuid.UUID
	IngredientID    uuid.UUID
	Name            string
	DefaultQuantity float64
}

// SnackLogEntry records a snack consumption for a day.
type SnackLogEntry struct {
	Date     time.Time
	PersonID uuid.UUID
	SnackID  uuid.UUID
	Consumed bool
}

// DataSource is the read side the engine runs against. Implementations
// fetch by date range or id set so a single computation issues a
// bounded number of batch queries instead of per-row lookups. All
// lookups that miss simply omit the id from the result map; the engine
// treats missing references as zero contribution.
type DataSource interface {
	People(ctx context.Context) ([]Person, error)
	PlanEntries(ctx context.Context, from, to time.Time) ([]PlanEntry, error)
	PortionsForRecipes(ctx context.Context, recipeIDs []uuid.UUID) ([]Portion, error)
	SnackLog(ctx context.Context, from, to time.Time) ([]SnackLogEntry, error)
	SnacksByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snack, error)
	IngredientsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Ingredient, error)
}

// Engine computes totals, costs and shopping lists from a DataSource.
// It is safe for concurrent use.
type Engine struct {
	src DataSource
	now func() time.Time
}

// New creates an Engine backed by src.
func New(src DataSource) *Engine {
	return &Engine{
		src: src,
		now: time.Now,
	}
}

// portionKey identifies the portion set served to one person by one
// recipe.
type portionKey struct {
	recipe uuid.UUID
	person uuid.UUID
}

// indexPortions groups portions by (recipe, person). Duplicate rows for
// the same (recipe, ingredient, person) stay in the slice and are
// summed during accumulation.
func indexPortions(portions []Portion) map[portionKey][]Portion {
	idx := make(map[portionKey][]Portion)
	for _, p := range portions {
		k := portionKey{recipe: p.RecipeID, person: p.PersonID}
		idx[k] = append(idx[k], p)
	}
	return idx
}
