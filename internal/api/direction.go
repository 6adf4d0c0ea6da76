package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybook/backend/internal/models"
)

// GetDirection returns a recipe's direction document
func (h *RecipeHandler) GetDirection(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Recipe", id.String())
		return
	}

	c.JSON(http.StatusOK, recipe.Direction)
}

// UpdateDirection replaces the direction document. An empty document is
// rejected with 400.
func (h *RecipeHandler) UpdateDirection(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	var req DirectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	if len(req.Direction) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty direction. Please provide valid data."})
		return
	}

	if err := h.db.Model(recipe).Update("direction", req.Direction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, req.Direction)
}

// DeleteDirection clears the direction to null unconditionally
func (h *RecipeHandler) DeleteDirection(c *gin.Context) {
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

	if err := h.db.Model(recipe).Update("direction", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}
