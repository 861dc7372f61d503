package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipeai/backend/internal/model"
	"github.com/recipeai/backend/internal/service"
)

// RecipeHandler handles recipe generation and persistence requests
type RecipeHandler struct {
	chef        service.IChefService
	recipes     service.IRecipeService
	ingredients service.IIngredientService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(chef service.IChefService, recipes service.IRecipeService, ingredients service.IIngredientService) *RecipeHandler {
	return &RecipeHandler{
		chef:        chef,
		recipes:     recipes,
		ingredients: ingredients,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/get-recipe", h.GenerateRecipe)
	router.POST("/save-recipe", h.SaveRecipe)
	router.GET("/get-recipes", h.GetRecipes)
	router.GET("/get-recipe-suggestions", h.GetRecipeSuggestions)
	router.DELETE("/recipes/:id", h.DeleteRecipe)
}

// GenerateRecipe runs the recipe pipeline against the current pantry.
// The request selects the mode: 1 strict, 2 extend, 3 freeform.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req struct {
		Type int `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == 0 {
		req.Type = int(service.ModeStrict)
	}

	pantry, err := h.pantryItems(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.chef.GenerateRecipe(c.Request.Context(), service.RecipeMode(req.Type), pantry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// SaveRecipe stores an explicitly saved recipe with is_fav=true
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		IsVeg        bool     `json:"is_veg"`
		IsRecipe     bool     `json:"is_recipe"`
		Items        []string `json:"items" binding:"required"`
		Instructions []string `json:"instructions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &model.Recipe{
		Name:         req.Name,
		IsVeg:        req.IsVeg,
		IsRecipe:     req.IsRecipe,
		Items:        model.JSONBStringArray(req.Items),
		Instructions: model.JSONBStringArray(req.Instructions),
	}

	stored, err := h.recipes.SaveFavorite(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": stored})
}

// GetRecipes lists every stored recipe
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipeSuggestions returns recipe ideas for the current pantry
func (h *RecipeHandler) GetRecipeSuggestions(c *gin.Context) {
	pantry, err := h.pantryItems(c)
	if err != nil {
		respondError(c, err)
		return
	}

	suggestions, err := h.chef.SuggestRecipes(c.Request.Context(), pantry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// DeleteRecipe removes a recipe by id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) pantryItems(c *gin.Context) ([]service.PantryItem, error) {
	ingredients, err := h.ingredients.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	pantry := make([]service.PantryItem, 0, len(ingredients))
	for _, ing := range ingredients {
		pantry = append(pantry, service.PantryItem{Name: ing.Name, Quantity: ing.Quantity})
	}
	return pantry, nil
}
