package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/backend/internal/planner"
	"github.com/hearthplan/backend/internal/service"
)

// SummaryHandler serves the computed week reports consumed by the
// dashboard and the automation layer.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/week-totals", h.WeekTotals)
	router.GET("/shopping-list", h.ShoppingList)
}

// WeekTotals returns the full summary for the requested week, or the
// current week when no week_start is given.
func (h *SummaryHandler) WeekTotals(c *gin.Context) {
	if raw := c.Query("week_start"); raw != "" {
		weekStart, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start, expected YYYY-MM-DD"})
			return
		}
		summary, err := h.summaryService.WeekSummary(c.Request.Context(), weekStart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute week summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	summary, err := h.summaryService.CurrentWeekSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute week summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ShoppingList returns one batch window's consolidated list.
func (h *SummaryHandler) ShoppingList(c *gin.Context) {
	weekStart := planner.WeekStart(time.Now())
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start, expected YYYY-MM-DD"})
			return
		}
		weekStart = planner.WeekStart(parsed)
	}

	var window planner.Window
	switch c.DefaultQuery("window", "wed") {
	case "wed":
		window = planner.WindowWed
	case "sun":
		window = planner.WindowSun
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "window must be wed or sun"})
		return
	}

	items, err := h.summaryService.ShoppingList(c.Request.Context(), weekStart, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_start": weekStart.Format(dateLayout), "window": c.DefaultQuery("window", "wed"), "items": items})
}
