package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/backend/internal/middleware"
	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/service"
)

// SnackHandler exposes the snack catalog and log endpoints.
type SnackHandler struct {
	snackService *service.SnackService
	authService  *service.AuthService
	rateLimiter  *middleware.RateLimiter
}

func NewSnackHandler(snackService *service.SnackService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *SnackHandler {
	return &SnackHandler{
		snackService: snackService,
		authService:  authService,
		rateLimiter:  rateLimiter,
	}
}

func (h *SnackHandler) RegisterRoutes(router *gin.RouterGroup) {
	snacks := router.Group("/snacks")
	{
		snacks.GET("", h.ListSnacks)
		snacks.POST("", middleware.AuthMiddleware(h.authService), h.CreateSnack)
	}

	update := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.rateLimiter != nil {
		update = append(update, h.rateLimiter.RateLimitMiddleware())
	}
	update = append(update, h.BulkUpdateLog)
	router.POST("/snack-log/bulk-update", update...)
}

func (h *SnackHandler) ListSnacks(c *gin.Context) {
	snacks, err := h.snackService.ListSnacks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch snacks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snacks": snacks})
}

func (h *SnackHandler) CreateSnack(c *gin.Context) {
	var snack models.Snack
	if err := c.ShouldBindJSON(&snack); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if snack.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.snackService.CreateSnack(c.Request.Context(), &snack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create snack"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SnackHandler) BulkUpdateLog(c *gin.Context) {
	var req BulkSnackUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selections := make([]service.SnackSelection, 0, len(req.Snacks))
	for _, toggle := range req.Snacks {
		date, err := time.Parse(dateLayout, toggle.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		selections = append(selections, service.SnackSelection{
			Date:      date,
			Person:    toggle.Person,
			SnackName: toggle.SnackName,
			Consumed:  toggle.Consumed,
		})
	}

	updated, err := h.snackService.BulkUpdateLog(c.Request.Context(), selections)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update snack log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
