package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/middleware"
	"github.com/pantrybook/backend/internal/models"
)

// CuisineHandler exposes cuisine CRUD
type CuisineHandler struct {
	db          *gorm.DB
	authService middleware.TokenValidator
}

// NewCuisineHandler creates a new CuisineHandler instance
func NewCuisineHandler(db *gorm.DB, authService middleware.TokenValidator) *CuisineHandler {
	return &CuisineHandler{db: db, authService: authService}
}

// RegisterRoutes registers cuisine routes on the given router group
func (h *CuisineHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	cuisines := router.Group("/cuisines")
	{
		cuisines.GET("", h.ListCuisines)
		cuisines.GET("/:id", h.GetCuisine)
		cuisines.POST("", auth, h.CreateCuisine)
		cuisines.PUT("/:id", auth, h.UpdateCuisine)
		cuisines.DELETE("/:id", auth, h.DeleteCuisine)
	}
}

// ListCuisines lists cuisines with pagination and a name substring filter
func (h *CuisineHandler) ListCuisines(c *gin.Context) {
	limit, skip := paginationParams(c, 100)

	query := h.db.Model(&models.Cuisine{})
	if search := normalizeName(c.Query("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var cuisines []models.Cuisine
	if err := query.Limit(limit).Offset(skip).Find(&cuisines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, cuisines)
}

// GetCuisine returns one cuisine by id
func (h *CuisineHandler) GetCuisine(c *gin.Context) {
	id, ok := pathID(c, "id", "Cuisine")
	if !ok {
		return
	}

	var cuisine models.Cuisine
	if err := h.db.First(&cuisine, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Cuisine", id.String())
		return
	}

	c.JSON(http.StatusOK, cuisine)
}

// CreateCuisine creates a cuisine owned by the caller
func (h *CuisineHandler) CreateCuisine(c *gin.Context) {
	var req CuisineRequest
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

	cuisine := models.Cuisine{
		Name:    req.Name,
		OwnerID: ownerID,
	}
	if err := h.db.Create(&cuisine).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Cuisine, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusCreated, cuisine)
}

// UpdateCuisine renames a cuisine; a collision with another cuisine's name
// is a Conflict.
func (h *CuisineHandler) UpdateCuisine(c *gin.Context) {
	id, ok := pathID(c, "id", "Cuisine")
	if !ok {
		return
	}

	var req CuisineRequest
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

	var cuisine models.Cuisine
	if err := h.db.First(&cuisine, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Cuisine", id.String())
		return
	}
	if cuisine.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	if err := h.db.Model(&cuisine).Update("name", req.Name).Error; err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The Cuisine, %s, already exists", req.Name))
		return
	}

	c.JSON(http.StatusOK, cuisine)
}

// DeleteCuisine removes a cuisine. Recipes referencing it keep their rows
// with the cuisine reference nulled.
func (h *CuisineHandler) DeleteCuisine(c *gin.Context) {
	id, ok := pathID(c, "id", "Cuisine")
	if !ok {
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var cuisine models.Cuisine
	if err := h.db.First(&cuisine, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Cuisine", id.String())
		return
	}
	if cuisine.OwnerID != ownerID {
		respondForbidden(c)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("cuisine_id = ?", id).Update("cuisine_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&cuisine).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}
