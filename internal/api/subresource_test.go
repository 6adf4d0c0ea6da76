package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrybook/backend/internal/models"
)

func TestGetIngredients(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+created.ID.String()+"/ingredients", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var ingredients []string
	decodeBody(t, w, &ingredients)
	assert.Equal(t, []string{"2 eggs", "100g flour"}, ingredients)
}

func TestUpdateIngredients(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String()+"/ingredients", map[string]interface{}{
		"ingredients": []string{"3 eggs"},
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var ingredients []string
	decodeBody(t, w, &ingredients)
	assert.Equal(t, []string{"3 eggs"}, ingredients)

	var recipe models.Recipe
	env.DB.First(&recipe, "id = ?", created.ID)
	assert.Equal(t, models.JSONStringArray{"3 eggs"}, recipe.Ingredients)
}

func TestUpdateIngredientsEmptyRejected(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String()+"/ingredients", map[string]interface{}{
		"ingredients": []string{},
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteIngredients(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+created.ID.String()+"/ingredients", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var recipe models.Recipe
	env.DB.First(&recipe, "id = ?", created.ID)
	assert.Empty(t, recipe.Ingredients)
}

func TestUpdateIngredientsNonOwnerForbidden(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createTestUser(t, "owner@example.com")
	_, otherToken := env.createTestUser(t, "other@example.com")

	created := createRecipe(t, env, ownerToken, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String()+"/ingredients", map[string]interface{}{
		"ingredients": []string{"3 eggs"},
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetDirection(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+created.ID.String()+"/direction", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var direction map[string]interface{}
	decodeBody(t, w, &direction)
	assert.Equal(t, "mix", direction["1"])
}

func TestUpdateDirection(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String()+"/direction", map[string]interface{}{
		"direction": map[string]interface{}{"1": "whisk"},
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var direction map[string]interface{}
	decodeBody(t, w, &direction)
	assert.Equal(t, "whisk", direction["1"])
}

func TestUpdateDirectionEmptyRejected(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String()+"/direction", map[string]interface{}{
		"direction": map[string]interface{}{},
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Empty direction. Please provide valid data.")
}

func TestDeleteDirection(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+created.ID.String()+"/direction", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var recipe models.Recipe
	env.DB.First(&recipe, "id = ?", created.ID)
	assert.Nil(t, recipe.Direction)
}

func TestUploadImageUnconfigured(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/image", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
