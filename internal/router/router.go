package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeai/backend/internal/api"
	"github.com/recipeai/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	ingredientHandler *api.IngredientHandler,
	recipeHandler *api.RecipeHandler,
	invoiceHandler *api.InvoiceHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Recipe API!")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		ingredientHandler.RegisterRoutes(apiGroup)
		recipeHandler.RegisterRoutes(apiGroup)
		invoiceHandler.RegisterRoutes(apiGroup)
	}

	return router
}
