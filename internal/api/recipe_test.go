package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybook/backend/internal/models"
)

func recipePayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"ingredients": []string{"2 eggs", "100g flour"},
		"direction":   map[string]interface{}{"1": "mix", "2": "bake"},
		"servings":    "4",
		"prep_time":   600,
		"cook_time":   1800,
	}
}

func createRecipe(t *testing.T, env *testEnv, token string, payload map[string]interface{}) models.Recipe {
	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	return recipe
}

func TestCreateRecipe(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["author"] = "Jane Doe"
	payload["cuisine"] = "French"
	payload["category"] = []string{"Breakfast", "Sweet"}

	recipe := createRecipe(t, env, token, payload)

	assert.Equal(t, "pancakes", recipe.Name)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "jane doe", recipe.Author.Name)
	require.NotNil(t, recipe.Cuisine)
	assert.Equal(t, "french", recipe.Cuisine.Name)
	assert.Len(t, recipe.Categories, 2)

	// related entities were created as side effects
	var authorCount, cuisineCount, categoryCount int64
	env.DB.Model(&models.Author{}).Count(&authorCount)
	env.DB.Model(&models.Cuisine{}).Count(&cuisineCount)
	env.DB.Model(&models.Category{}).Count(&categoryCount)
	assert.Equal(t, int64(1), authorCount)
	assert.Equal(t, int64(1), cuisineCount)
	assert.Equal(t, int64(2), categoryCount)
}

func TestCreateRecipeReusesExistingRelations(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	first := recipePayload("Pancakes")
	first["author"] = "Jane Doe"
	first["cuisine"] = "French"
	first["category"] = []string{"Breakfast"}
	createRecipe(t, env, token, first)

	second := recipePayload("Crepes")
	second["author"] = "JANE DOE"
	second["cuisine"] = "  french "
	second["category"] = []string{"breakfast"}
	createRecipe(t, env, token, second)

	var authorCount, cuisineCount, categoryCount int64
	env.DB.Model(&models.Author{}).Count(&authorCount)
	env.DB.Model(&models.Cuisine{}).Count(&cuisineCount)
	env.DB.Model(&models.Category{}).Count(&categoryCount)
	assert.Equal(t, int64(1), authorCount)
	assert.Equal(t, int64(1), cuisineCount)
	assert.Equal(t, int64(1), categoryCount)
}

func TestCreateRecipeWithoutRelations(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	recipe := createRecipe(t, env, token, recipePayload("Plain Toast"))

	assert.Nil(t, recipe.Author)
	assert.Nil(t, recipe.Cuisine)
	assert.Empty(t, recipe.Categories)
}

func TestCreateRecipeUnauthenticated(t *testing.T) {
	env := setupTestRouter(t)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", recipePayload("Pancakes"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeMissingIngredients(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"name": "pancakes",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipeSameNameSameAuthorConflicts(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["author"] = "Jane Doe"
	createRecipe(t, env, token, payload)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", payload, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "The Recipe, pancakes, by jane doe already exists")
}

func TestCreateRecipeSameNameDifferentAuthorAllowed(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	first := recipePayload("Pancakes")
	first["author"] = "Jane Doe"
	createRecipe(t, env, token, first)

	second := recipePayload("Pancakes")
	second["author"] = "John Smith"
	createRecipe(t, env, token, second)

	var count int64
	env.DB.Model(&models.Recipe{}).Where("name = ?", "pancakes").Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreateRecipeLookupFailure(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	createRecipe(t, env, token, recipePayload("Pancakes"))

	// break the duplicate-name lookup's author preload
	require.NoError(t, env.DB.Exec("DROP TABLE authors").Error)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", recipePayload("Pancakes"), token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestGetRecipe(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["cuisine"] = "French"
	created := createRecipe(t, env, token, payload)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	assert.Equal(t, created.ID, recipe.ID)
	assert.Equal(t, "pancakes", recipe.Name)
	require.NotNil(t, recipe.Cuisine)
	assert.Equal(t, "french", recipe.Cuisine.Name)
}

func TestGetRecipeNotFound(t *testing.T) {
	env := setupTestRouter(t)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/a6c3a1f0-0000-0000-0000-000000000000", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "was not found")
}

func TestGetRecipeMalformedID(t *testing.T) {
	env := setupTestRouter(t)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipes(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	for i := 0; i < 3; i++ {
		createRecipe(t, env, token, recipePayload(fmt.Sprintf("Recipe %d", i)))
	}

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 3)
}

func TestListRecipesPagination(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	for i := 0; i < 5; i++ {
		createRecipe(t, env, token, recipePayload(fmt.Sprintf("Recipe %d", i)))
	}

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?limit=2&skip=4", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
}

func TestListRecipesSearchFilter(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	createRecipe(t, env, token, recipePayload("Chocolate Cake"))
	createRecipe(t, env, token, recipePayload("Pancakes"))
	createRecipe(t, env, token, recipePayload("Green Salad"))

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?search=CAKE", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 2)
}

func TestListRecipesAuthorFilterExcludesAuthorless(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	withAuthor := recipePayload("Pancakes")
	withAuthor["author"] = "Jane Doe"
	createRecipe(t, env, token, withAuthor)
	createRecipe(t, env, token, recipePayload("Plain Toast"))

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?author=jane", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "pancakes", recipes[0].Name)
}

func TestListRecipesBlankFiltersIncludeRelationless(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	createRecipe(t, env, token, recipePayload("Plain Toast"))

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?author=&cuisine=", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
}

func TestListRecipesCuisineFilter(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	french := recipePayload("Crepes")
	french["cuisine"] = "French"
	createRecipe(t, env, token, french)

	italian := recipePayload("Carbonara")
	italian["cuisine"] = "Italian"
	createRecipe(t, env, token, italian)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?cuisine=ital", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "carbonara", recipes[0].Name)
}

func TestUpdateRecipeKeepsName(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	created := createRecipe(t, env, token, recipePayload("Pancakes"))

	update := recipePayload("Renamed Pancakes")
	update["servings"] = "8"
	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), update, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	assert.Equal(t, "pancakes", recipe.Name)
	require.NotNil(t, recipe.Servings)
	assert.Equal(t, "8", *recipe.Servings)
}

func TestUpdateRecipeKeepsAuthor(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["author"] = "Jane Doe"
	created := createRecipe(t, env, token, payload)

	update := recipePayload("Pancakes")
	update["author"] = "Someone Else"
	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), update, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "jane doe", recipe.Author.Name)
}

func TestUpdateRecipeReplacesCategories(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["category"] = []string{"Breakfast", "Sweet"}
	created := createRecipe(t, env, token, payload)

	update := recipePayload("Pancakes")
	update["category"] = []string{"Dessert"}
	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), update, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	require.Len(t, recipe.Categories, 1)
	assert.Equal(t, "dessert", recipe.Categories[0].Name)

	// omitting the list clears all tags
	w = performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), recipePayload("Pancakes"), token)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &recipe)
	assert.Empty(t, recipe.Categories)
}

func TestUpdateRecipeNonOwnerForbidden(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createTestUser(t, "owner@example.com")
	_, otherToken := env.createTestUser(t, "other@example.com")

	created := createRecipe(t, env, ownerToken, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), recipePayload("Pancakes"), otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized to perform requested action")
}

func TestDeleteRecipe(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	payload := recipePayload("Pancakes")
	payload["category"] = []string{"Breakfast"}
	created := createRecipe(t, env, token, payload)

	w := performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// join rows are gone, the category itself survives
	var joinCount int64
	env.DB.Table("recipe_categories").Count(&joinCount)
	assert.Equal(t, int64(0), joinCount)

	var categoryCount int64
	env.DB.Model(&models.Category{}).Count(&categoryCount)
	assert.Equal(t, int64(1), categoryCount)
}

func TestDeleteRecipeNonOwnerForbidden(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createTestUser(t, "owner@example.com")
	_, otherToken := env.createTestUser(t, "other@example.com")

	created := createRecipe(t, env, ownerToken, recipePayload("Pancakes"))

	w := performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRecipeNotFound(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createTestUser(t, "cook@example.com")

	w := performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/a6c3a1f0-0000-0000-0000-000000000000", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
