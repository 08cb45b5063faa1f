package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/middleware"
	"github.com/hearthplan/backend/internal/service"
)

// SetupAPI wires services and handlers onto /api/v1. redisClient and
// imageService may be nil; caching, rate limiting and image uploads
// degrade gracefully without them.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, imageService *service.ImageService, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		authService := service.NewAuthService(db, jwtSecret)
		personService := service.NewPersonService(db)
		ingredientService := service.NewIngredientService(db)
		recipeService := service.NewRecipeService(db)
		planService := service.NewPlanService(db)
		snackService := service.NewSnackService(db)
		summaryService := service.NewSummaryService(db, redisClient)

		var bulkLimiter *middleware.RateLimiter
		if redisClient != nil {
			bulkLimiter = middleware.NewBulkUpdateRateLimiter(redisClient)
		}

		// Initialize handlers
		authHandler := NewAuthHandler(authService)
		personHandler := NewPersonHandler(personService, authService)
		ingredientHandler := NewIngredientHandler(ingredientService, authService)
		recipeHandler := NewRecipeHandler(recipeService, authService, imageService)
		planHandler := NewPlanHandler(planService, authService, bulkLimiter)
		snackHandler := NewSnackHandler(snackService, authService, bulkLimiter)
		summaryHandler := NewSummaryHandler(summaryService)

		// Register routes
		authHandler.RegisterRoutes(v1)
		personHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		planHandler.RegisterRoutes(v1)
		snackHandler.RegisterRoutes(v1)
		summaryHandler.RegisterRoutes(v1)
	}
}
