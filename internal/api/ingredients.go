package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybook/backend/internal/models"
)

// GetIngredients returns a recipe's ordered ingredient list
func (h *RecipeHandler) GetIngredients(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, "id = ?", id).Error; err != nil {
		respondNotFound(c, "Recipe", id.String())
		return
	}

	c.JSON(http.StatusOK, recipe.Ingredients)
}

// UpdateIngredients replaces the ingredient list. An empty list is rejected
// at the validation boundary.
func (h *RecipeHandler) UpdateIngredients(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}

	var req IngredientsRequest
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

	ingredients := models.JSONStringArray(req.Ingredients)
	if err := h.db.Model(recipe).Update("ingredients", ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// DeleteIngredients clears the ingredient list
func (h *RecipeHandler) DeleteIngredients(c *gin.Context) {
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

	if err := h.db.Model(recipe).Update("ingredients", models.JSONStringArray{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}
