package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/middleware"
	"github.com/pantrybook/backend/internal/models"
)

// CategoryHandler exposes category CRUD
type CategoryHandler struct {
	db          *gorm.DB
	authService middleware.TokenValidator
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(db *gorm.DB, authService middleware.TokenValidator) *CategoryHandler {
	return &CategoryHandler{db: db, authService: authService}
}

// RegisterRoutes registers category routes on the given router group
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", auth, h.CreateCategory)
		categories.PUT("/:id", auth, h.UpdateCategory)
		categories.DELETE("/:id", auth, h.DeleteCategory)
	}
}

// ListCategories lists categories with pagination and a name substring filter
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	limit, skip := paginationParams(c, 10)

	query := h.db.Model(&models.Category{})
	if search := normalizeName(c.Query("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var categories []models.Category
	if err := query.Limit(limit).Offset(skip).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category by id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id", "Category")
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Category", id.String())
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category owned by the caller
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
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

	category := models.Category{
		Name:    req.Name,
		OwnerID: ownerID,
	}
	if err := h.db.Create(&category).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Category, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category; a collision with another category's
// name is a Conflict.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id", "Category")
	if !ok {
		return
	}

	var req CategoryRequest
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

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Category", id.String())
		return
	}
	if category.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	if err := h.db.Model(&category).Update("name", req.Name).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Category, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and its recipe associations. Recipes
// keep their rows and their other categories.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id", "Category")
	if !ok {
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Category", id.String())
		return
	}
	if category.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}
