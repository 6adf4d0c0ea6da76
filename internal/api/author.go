package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/middleware"
	"github.com/pantrybook/backend/internal/models"
	"github.com/pantrybook/backend/internal/service"
)

// AuthorHandler exposes author CRUD plus the nested recipe and category
// sub-resources.
type AuthorHandler struct {
	db          *gorm.DB
	authService middleware.TokenValidator
	catalog     *service.CatalogService
}

// NewAuthorHandler creates a new AuthorHandler instance
func NewAuthorHandler(db *gorm.DB, authService middleware.TokenValidator, catalog *service.CatalogService) *AuthorHandler {
	return &AuthorHandler{
		db:          db,
		authService: authService,
		catalog:     catalog,
	}
}

// RegisterRoutes registers author routes on the given router group
func (h *AuthorHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	authors := router.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthor)
		authors.POST("", auth, h.CreateAuthor)
		authors.PUT("/:id", auth, h.UpdateAuthor)
		authors.DELETE("/:id", auth, h.DeleteAuthor)

		authors.GET("/:id/recipes", h.ListAuthorRecipes)
		authors.POST("/:id/recipes", auth, h.CreateAuthorRecipe)
		authors.PUT("/:id/recipes/:recipeId", auth, h.UpdateAuthorRecipe)
		authors.DELETE("/:id/recipes/:recipeId", auth, h.DeleteAuthorRecipe)

		authors.GET("/:id/categories", h.ListAuthorCategories)
	}
}

// ListAuthors lists authors with pagination and a name substring filter
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	limit, skip := paginationParams(c, 10)

	query := h.db.Model(&models.Author{})
	if search := normalizeName(c.Query("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var authors []models.Author
	if err := query.Limit(limit).Offset(skip).Find(&authors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, authors)
}

// GetAuthor returns one author by id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
		return
	}

	c.JSON(http.StatusOK, author)
}

// CreateAuthor creates an author owned by the caller. The name is globally
// unique; a collision is a Conflict no matter who owns the existing row.
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
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

	author := models.Author{
		Name:    req.Name,
		Bio:     req.Bio,
		OwnerID: ownerID,
	}
	if err := h.db.Create(&author).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Author, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusCreated, author)
}

// UpdateAuthor updates an author's mutable fields. The name is restored
// from the stored row first, so a rename through this endpoint is a no-op.
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
		return
	}
	if author.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	updates := map[string]interface{}{
		"name": author.Name,
		"bio":  req.Bio,
	}
	if err := h.db.Model(&author).Updates(updates).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Author, %s, already exists", author.Name))
		return
	}

	c.JSON(http.StatusOK, author)
}

// DeleteAuthor removes an author. Recipes referencing it keep their rows
// with the author reference nulled.
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
		return
	}
	if author.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("author_id = ?", id).Update("author_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&author).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuthorRecipes lists the author's recipes with pagination and a recipe
// name substring filter.
func (h *AuthorHandler) ListAuthorRecipes(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
		return
	}

	limit, skip := paginationParams(c, 10)

	query := h.db.Model(&models.Recipe{}).Where("author_id = ?", id)
	if search := normalizeName(c.Query("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
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

// CreateAuthorRecipe adds a recipe under this author. The payload's author
// field is ignored; the path author wins. A duplicate recipe name under the
// same author is a Conflict.
func (h *AuthorHandler) CreateAuthorRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
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

	var existing models.Recipe
	err := h.db.Where("name = ? AND author_id = ?", req.Name, id).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("The Recipe, %s, by %s already exists", req.Name, author.Name),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	recipe, err := createRecipeTx(h.db, h.catalog, &req, &author.ID, ownerID)
	if err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Recipe, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateAuthorRecipe updates a recipe scoped to this author. Ownership is
// enforced on the recipe, not the author; the recipe keeps its stored name
// and is pinned to the path author.
func (h *AuthorHandler) UpdateAuthorRecipe(c *gin.Context) {
	authorID, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeId", "Recipe")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", authorID).Error; err != nil {
		respondNotFound(c, "Author", authorID.String())
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

	recipe, ok := recipeOwnedBy(c, h.db, recipeID, ownerID)
	if !ok {
		return
	}

	updated, err := updateRecipeTx(h.db, h.catalog, recipe, &req, &author.ID, ownerID)
	if err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Recipe, %s, already exists", recipe.Name))
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAuthorRecipe deletes a recipe scoped to this author. Ownership is
// enforced on the recipe, not the author.
func (h *AuthorHandler) DeleteAuthorRecipe(c *gin.Context) {
	authorID, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeId", "Recipe")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", authorID).Error; err != nil {
		respondNotFound(c, "Author", authorID.String())
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := recipeOwnedBy(c, h.db, recipeID, ownerID)
	if !ok {
		return
	}

	if err := deleteRecipe(h.db, recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuthorCategories returns the distinct categories used across the
// author's recipes, via the category association table.
func (h *AuthorHandler) ListAuthorCategories(c *gin.Context) {
	id, ok := pathID(c, "id", "Author")
	if !ok {
		return
	}

	var author models.Author
	if err := h.db.First(&author, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Author", id.String())
		return
	}

	var categories []models.Category
	err := h.db.Model(&models.Category{}).
		Joins("JOIN recipe_categories ON recipe_categories.category_id = categories.id").
		Joins("JOIN recipes ON recipes.id = recipe_categories.recipe_id").
		Where("recipes.author_id = ?", id).
		Distinct().
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
