package api

import (
	"strings"

	"github.com/pantrybook/backend/internal/models"
)

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthorRequest represents the request body for creating or updating an author
type AuthorRequest struct {
	Name string  `json:"name" binding:"required,max=100"`
	Bio  *string `json:"bio"`
}

func (r *AuthorRequest) normalize() {
	r.Name = normalizeName(r.Name)
}

// CuisineRequest represents the request body for creating or updating a cuisine
type CuisineRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *CuisineRequest) normalize() {
	r.Name = normalizeName(r.Name)
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *CategoryRequest) normalize() {
	r.Name = normalizeName(r.Name)
}

// RecipeRequest represents the request body for creating or updating a
// recipe. Author, cuisine and categories are referenced by name and
// resolved through the catalog service.
type RecipeRequest struct {
	Name           string            `json:"name" binding:"required,max=255"`
	URL            *string           `json:"url"`
	Description    *string           `json:"description"`
	Servings       *string           `json:"servings"`
	NutritionFacts models.JSONMap    `json:"nutrition_facts"`
	Ingredients    []string          `json:"ingredients" binding:"required"`
	Direction      models.JSONMap    `json:"direction"`
	PrepTime       *models.Duration  `json:"prep_time"`
	CookTime       *models.Duration  `json:"cook_time"`
	TotalTime      *models.Duration  `json:"total_time"`
	ImageLink      *string           `json:"image_link"`
	VideoLink      *string           `json:"video_link"`
	Cuisine        string            `json:"cuisine"`
	Author         string            `json:"author"`
	Category       []string          `json:"category"`
}

func (r *RecipeRequest) normalize() {
	r.Name = normalizeName(r.Name)
	r.Author = normalizeName(r.Author)
	r.Cuisine = normalizeName(r.Cuisine)
	for i, name := range r.Category {
		r.Category[i] = normalizeName(name)
	}
}

// IngredientsRequest represents the request body for replacing a recipe's
// ingredient list. The list must not be empty.
type IngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// DirectionRequest represents the request body for replacing a recipe's direction
type DirectionRequest struct {
	Direction models.JSONMap `json:"direction"`
}

// normalizeName lowercases and trims a referenced entity name, matching the
// case normalization applied at every create path.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
