package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipeai/backend/internal/model"
	"github.com/recipeai/backend/internal/service"
)

// IngredientHandler handles pantry requests
type IngredientHandler struct {
	ingredients service.IIngredientService
	events      service.EventPublisher
}

// NewIngredientHandler creates a new IngredientHandler instance
func NewIngredientHandler(ingredients service.IIngredientService, events service.EventPublisher) *IngredientHandler {
	return &IngredientHandler{
		ingredients: ingredients,
		events:      events,
	}
}

// RegisterRoutes registers the pantry routes
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/add-ingredient", h.AddIngredient)
	router.GET("/get-ingredients", h.GetIngredients)
	router.GET("/get-expiring-ingredients", h.GetExpiringIngredients)
	router.DELETE("/ingredients/:id", h.DeleteIngredient)
}

// AddIngredient upserts a single ingredient keyed by name
func (h *IngredientHandler) AddIngredient(c *gin.Context) {
	var req struct {
		Name               string `json:"name" binding:"required"`
		Quantity           int    `json:"quantity"`
		IsVegetableOrFruit bool   `json:"is_vegetable_or_fruit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.ingredients.Upsert(c.Request.Context(), &model.Ingredient{
		Name:               req.Name,
		Quantity:           req.Quantity,
		IsVegetableOrFruit: req.IsVegetableOrFruit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.events != nil {
		if err := h.events.PublishPantryUpdated(c.Request.Context(), []uuid.UUID{stored.ID}); err != nil {
			log.Printf("[IngredientHandler] failed to publish pantry.updated: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ingredient": stored})
}

// GetIngredients lists every pantry ingredient
func (h *IngredientHandler) GetIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetExpiringIngredients lists fruit/vegetable items past the expiry window
func (h *IngredientHandler) GetExpiringIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.ListExpiring(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// DeleteIngredient removes an ingredient by id
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	if err := h.ingredients.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
