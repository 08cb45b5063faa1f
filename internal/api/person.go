package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/backend/internal/middleware"
	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/service"
)

// PersonHandler exposes household member endpoints.
type PersonHandler struct {
	personService *service.PersonService
	authService   *service.AuthService
}

func NewPersonHandler(personService *service.PersonService, authService *service.AuthService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		authService:   authService,
	}
}

func (h *PersonHandler) RegisterRoutes(router *gin.RouterGroup) {
	people := router.Group("/people")
	{
		people.GET("", h.ListPeople)
		people.POST("", middleware.AuthMiddleware(h.authService), h.CreatePerson)
	}
}

func (h *PersonHandler) ListPeople(c *gin.Context) {
	people, err := h.personService.ListPeople(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch people"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var person models.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if person.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.personService.CreatePerson(c.Request.Context(), &person)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create person"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
