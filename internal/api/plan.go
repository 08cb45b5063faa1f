package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/backend/internal/middleware"
	"github.com/hearthplan/backend/internal/planner"
	"github.com/hearthplan/backend/internal/service"
)

const dateLayout = "2006-01-02"

// PlanHandler exposes the week plan and its bulk-update push.
type PlanHandler struct {
	planService *service.PlanService
	authService *service.AuthService
	rateLimiter *middleware.RateLimiter
}

func NewPlanHandler(planService *service.PlanService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/week-plan", h.GetWeekPlan)

	update := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.rateLimiter != nil {
		update = append(update, h.rateLimiter.RateLimitMiddleware())
	}
	update = append(update, h.BulkUpdate)
	router.POST("/week-plan/bulk-update", update...)
}

func (h *PlanHandler) GetWeekPlan(c *gin.Context) {
	weekStart := planner.WeekStart(time.Now())
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start, expected YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	entries, err := h.planService.WeekPlan(c.Request.Context(), weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch week plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *PlanHandler) BulkUpdate(c *gin.Context) {
	var req BulkMealUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart, err := time.Parse(dateLayout, req.WeekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start, expected YYYY-MM-DD"})
		return
	}

	updated, err := h.planService.BulkUpdate(c.Request.Context(), weekStart, req.Meals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update week plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
