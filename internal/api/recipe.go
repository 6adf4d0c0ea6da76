package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/middleware"
	"github.com/pantrybook/backend/internal/models"
	"github.com/pantrybook/backend/internal/service"
)

// RecipeHandler exposes recipe CRUD plus the ingredients, direction and
// image sub-resources.
type RecipeHandler struct {
	db          *gorm.DB
	authService middleware.TokenValidator
	catalog     *service.CatalogService
	images      *service.ImageService
	limiter     *middleware.RateLimiter
}

// NewRecipeHandler creates a new RecipeHandler instance. images and limiter
// may be nil when S3 or Redis is not configured.
func NewRecipeHandler(db *gorm.DB, authService middleware.TokenValidator, catalog *service.CatalogService, images *service.ImageService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		db:          db,
		authService: authService,
		catalog:     catalog,
		images:      images,
		limiter:     limiter,
	}
}

// RegisterRoutes registers recipe routes on the given router group
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{auth}
		if h.limiter != nil {
			chain = append(chain, h.limiter.RateLimitMiddleware())
		}
		return append(chain, handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", write(h.CreateRecipe)...)
		recipes.PUT("/:id", write(h.UpdateRecipe)...)
		recipes.DELETE("/:id", write(h.DeleteRecipe)...)

		recipes.GET("/:id/ingredients", h.GetIngredients)
		recipes.PUT("/:id/ingredients", write(h.UpdateIngredients)...)
		recipes.DELETE("/:id/ingredients", write(h.DeleteIngredients)...)

		recipes.GET("/:id/direction", h.GetDirection)
		recipes.PUT("/:id/direction", write(h.UpdateDirection)...)
		recipes.DELETE("/:id/direction", write(h.DeleteDirection)...)

		recipes.POST("/:id/image", write(h.UploadImage)...)
	}
}

// ListRecipes lists recipes filtered by case-insensitive substring match on
// recipe name, author name and cuisine name. Author and cuisine filters
// match through the joined tables, so recipes lacking that relation are
// excluded when the filter is set. Blank filters do not exclude anything.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, skip := paginationParams(c, 10)

	query := h.db.Model(&models.Recipe{}).
		Joins("LEFT JOIN authors ON authors.id = recipes.author_id").
		Joins("LEFT JOIN cuisines ON cuisines.id = recipes.cuisine_id")

	if search := normalizeName(c.Query("search")); search != "" {
		query = query.Where("recipes.name LIKE ?", "%"+search+"%")
	}
	if author := normalizeName(c.Query("author")); author != "" {
		query = query.Where("authors.name LIKE ?", "%"+author+"%")
	}
	if cuisine := normalizeName(c.Query("cuisine")); cuisine != "" {
		query = query.Where("cuisines.name LIKE ?", "%"+cuisine+"%")
	}

	var recipes []models.Recipe
	err := query.Limit(limit).Offset(skip).
		Preload("Author").Preload("Cuisine").Preload("Categories").
		Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns the full recipe projection including nested author,
// cuisine and category objects.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	recipe, err := loadRecipe(h.db, id)
	if err != nil {
		respondNotFound(c, "Recipe", id.String())
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe resolves the referenced author, cuisine and categories and
// persists the recipe inside one transaction. Creating a recipe whose name
// already exists is rejected only when an author was supplied and it
// matches the existing recipe's author.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.normalize()

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var existing models.Recipe
	err := h.db.Preload("Author").Where("name = ?", req.Name).First(&existing).Error
	if err == nil && req.Author != "" && existing.Author != nil && existing.Author.Name == req.Author {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("The Recipe, %s, by %s already exists", req.Name, req.Author),
		})
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	recipe, err := createRecipeTx(h.db, h.catalog, &req, nil, ownerID)
	if err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Recipe, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// createRecipeTx runs the resolve-then-persist sequence in one transaction.
// When forcedAuthorID is set the payload's author field is ignored and the
// recipe is attached to that author instead.
func createRecipeTx(db *gorm.DB, catalog *service.CatalogService, req *RecipeRequest, forcedAuthorID *uuid.UUID, ownerID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.Transaction(func(tx *gorm.DB) error {
		authorID := forcedAuthorID
		if authorID == nil {
			resolved, err := catalog.ResolveAuthor(tx, req.Author, ownerID)
			if err != nil {
				return err
			}
			authorID = resolved
		}

		cuisineID, err := catalog.ResolveCuisine(tx, req.Cuisine, ownerID)
		if err != nil {
			return err
		}

		categories, err := catalog.ResolveCategories(tx, req.Category, ownerID)
		if err != nil {
			return err
		}

		recipe = models.Recipe{
			Name:           req.Name,
			URL:            req.URL,
			Description:    req.Description,
			Servings:       req.Servings,
			NutritionFacts: req.NutritionFacts,
			Ingredients:    models.JSONStringArray(req.Ingredients),
			Direction:      req.Direction,
			PrepTime:       req.PrepTime,
			CookTime:       req.CookTime,
			TotalTime:      req.TotalTime,
			ImageLink:      req.ImageLink,
			VideoLink:      req.VideoLink,
			AuthorID:       authorID,
			CuisineID:      cuisineID,
			OwnerID:        ownerID,
		}
		if len(categories) > 0 {
			recipe.Categories = categories
		}

		return tx.Create(&recipe).Error
	})
	if err != nil {
		return nil, err
	}

	return loadRecipe(db, recipe.ID)
}

// UpdateRecipe replaces a recipe's fields. The stored name is restored
// before persisting, so a rename through this endpoint is a no-op, and the
// author reference is preserved from the existing row. Cuisine and
// categories are re-resolved from the payload; an absent category list
// clears all tags.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.normalize()

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := recipeOwnedBy(c, h.db, id, ownerID)
	if !ok {
		return
	}

	updated, err := updateRecipeTx(h.db, h.catalog, recipe, &req, recipe.AuthorID, ownerID)
	if err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Recipe, %s, already exists", recipe.Name))
		return
	}

	c.JSON(http.StatusOK, updated)
}

// updateRecipeTx applies req to recipe inside one transaction, keeping the
// stored name and the given author reference.
func updateRecipeTx(db *gorm.DB, catalog *service.CatalogService, recipe *models.Recipe, req *RecipeRequest, authorID *uuid.UUID, ownerID uuid.UUID) (*models.Recipe, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		cuisineID, err := catalog.ResolveCuisine(tx, req.Cuisine, ownerID)
		if err != nil {
			return err
		}

		categories, err := catalog.ResolveCategories(tx, req.Category, ownerID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":            recipe.Name,
			"url":             req.URL,
			"description":     req.Description,
			"servings":        req.Servings,
			"nutrition_facts": req.NutritionFacts,
			"ingredients":     models.JSONStringArray(req.Ingredients),
			"direction":       req.Direction,
			"prep_time":       req.PrepTime,
			"cook_time":       req.CookTime,
			"total_time":      req.TotalTime,
			"image_link":      req.ImageLink,
			"video_link":      req.VideoLink,
			"author_id":       authorID,
			"cuisine_id":      cuisineID,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		assoc := tx.Model(recipe).Association("Categories")
		if len(categories) > 0 {
			return assoc.Replace(&categories)
		}
		return assoc.Clear()
	})
	if err != nil {
		return nil, err
	}

	return loadRecipe(db, recipe.ID)
}

// DeleteRecipe hard-deletes a recipe together with its category join rows
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := recipeOwnedBy(c, h.db, id, ownerID)
	if !ok {
		return
	}

	if err := deleteRecipe(h.db, recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// loadRecipe fetches the full projection of one recipe
func loadRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.Preload("Author").Preload("Cuisine").Preload("Categories").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// deleteRecipe removes a recipe and its category associations
func deleteRecipe(db *gorm.DB, recipe *models.Recipe) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_categories WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// pathID parses a uuid path parameter, replying 404 for malformed values so
// probing with junk ids is indistinguishable from a missing row.
func pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		respondNotFound(c, resource, raw)
		return uuid.Nil, false
	}
	return id, true
}

// paginationParams reads limit/skip query parameters with defaults
func paginationParams(c *gin.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	return limit, skip
}

// recipeOwnedBy loads a recipe and enforces existence and ownership,
// writing the error response itself when either check fails.
func recipeOwnedBy(c *gin.Context, db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (*models.Recipe, bool) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Recipe", id.String())
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return nil, false
	}
	if recipe.OwnerID != ownerID {
		respondForbidden(c)
		return nil, false
	}
	return &recipe, true
}
