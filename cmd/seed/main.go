package main

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/database"
	"github.com/hearthplan/backend/internal/models"
)

type ingredientSeed struct {
	name    string
	unit    string
	cost    float64
	kcal    float64
	protein float64
	carbs   float64
	fat     float64
}

var peopleSeeds = []string{"Michael", "Lorna", "Izzy"}

var ingredientSeeds = []ingredientSeed{
	{"Rice", models.UnitGram, 0.003, 1.3, 0.027, 0.28, 0.003},
	{"Pasta", models.UnitGram, 0.002, 1.58, 0.058, 0.31, 0.009},
	{"Chicken Breast", models.UnitGram, 0.008, 1.65, 0.31, 0, 0.036},
	{"Broccoli", models.UnitGram, 0.004, 0.34, 0.028, 0.066, 0.004},
	{"Olive Oil", models.UnitMilliliter, 0.006, 8.84, 0, 0, 1},
	{"Milk", models.UnitMilliliter, 0.0012, 0.64, 0.034, 0.048, 0.036},
	{"Egg", models.UnitItem, 0.25, 78, 6.3, 0.6, 5.3},
	{"Protein Bar", models.UnitItem, 1.5, 200, 20, 21, 7},
	{"Apple", models.UnitItem, 0.4, 95, 0.5, 25, 0.3},
}

type recipeSeed struct {
	name     string
	mealType string
	// ingredient name -> grams/ml/items per person
	portions map[string]float64
}

var recipeSeeds = []recipeSeed{
	{"Chicken and Rice", models.MealDinner, map[string]float64{
		"Chicken Breast": 150, "Rice": 75, "Broccoli": 100, "Olive Oil": 10,
	}},
	{"Pasta Bake", models.MealDinner, map[string]float64{
		"Pasta": 90, "Broccoli": 80, "Olive Oil": 15,
	}},
	{"Scrambled Eggs", models.MealBreakfast, map[string]float64{
		"Egg": 2, "Milk": 30,
	}},
}

var snackSeeds = map[string]float64{
	"Protein Bar": 1,
	"Apple":       1,
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	people := make(map[string]models.Person, len(peopleSeeds))
	for _, name := range peopleSeeds {
		var person models.Person
		if err := db.Where(models.Person{Name: name}).FirstOrCreate(&person).Error; err != nil {
			log.Fatalf("Failed to seed person %s: %v", name, err)
		}
		people[name] = person
	}

	ingredients := make(map[string]models.Ingredient, len(ingredientSeeds))
	for _, seed := range ingredientSeeds {
		var ingredient models.Ingredient
		err := db.Where(models.Ingredient{Name: seed.name}).
			Attrs(models.Ingredient{
				Unit:           seed.unit,
				CostPerUnit:    seed.cost,
				KcalPerUnit:    seed.kcal,
				ProteinPerUnit: seed.protein,
				CarbsPerUnit:   seed.carbs,
				FatPerUnit:     seed.fat,
			}).
			FirstOrCreate(&ingredient).Error
		if err != nil {
			log.Fatalf("Failed to seed ingredient %s: %v", seed.name, err)
		}
		ingredients[seed.name] = ingredient
	}

	for _, seed := range recipeSeeds {
		var recipe models.Recipe
		err := db.Where(models.Recipe{Name: seed.name}).
			Attrs(models.Recipe{MealType: seed.mealType}).
			FirstOrCreate(&recipe).Error
		if err != nil {
			log.Fatalf("Failed to seed recipe %s: %v", seed.name, err)
		}

		// Every person gets the same base portions; quantities are
		// tuned per person in the UI afterwards.
		var count int64
		db.Model(&models.RecipePortion{}).Where("recipe_id = ?", recipe.ID).Count(&count)
		if count > 0 {
			continue
		}
		for ingredientName, quantity := range seed.portions {
			for _, person := range people {
				portion := models.RecipePortion{
					RecipeID:     recipe.ID,
					IngredientID: ingredients[ingredientName].ID,
					PersonID:     person.ID,
					Quantity:     quantity,
				}
				if err := db.Create(&portion).Error; err != nil {
					log.Fatalf("Failed to seed portion for %s: %v", seed.name, err)
				}
			}
		}
		log.Printf("Seeded recipe %s", seed.name)
	}

	for name, quantity := range snackSeeds {
		var snack models.Snack
		err := db.Where(models.Snack{Name: name}).
			Attrs(models.Snack{
				IngredientID:    ingredients[name].ID,
				DefaultQuantity: quantity,
			}).
			FirstOrCreate(&snack).Error
		if err != nil {
			log.Fatalf("Failed to seed snack %s: %v", name, err)
		}
	}

	log.Printf("Seeding complete: %d people, %d ingredients, %d recipes, %d snacks",
		len(peopleSeeds), len(ingredientSeeds), len(recipeSeeds), len(snackSeeds))
}
