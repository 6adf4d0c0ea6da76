package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/api"
	"github.com/pantrybook/backend/internal/database"
	"github.com/pantrybook/backend/internal/middleware"
)

// Handlers bundles the API handlers mounted by SetupRouter.
type Handlers struct {
	User     *api.UserHandler
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	Author   *api.AuthorHandler
	Cuisine  *api.CuisineHandler
	Category *api.CategoryHandler
}

// SetupRouter configures the application routes
func SetupRouter(db *gorm.DB, handlers Handlers) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		handlers.User.RegisterRoutes(v1)
		handlers.Auth.RegisterRoutes(v1)
		handlers.Recipe.RegisterRoutes(v1)
		handlers.Author.RegisterRoutes(v1)
		handlers.Cuisine.RegisterRoutes(v1)
		handlers.Category.RegisterRoutes(v1)
	}

	return router
}
