package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrybook/backend/internal/api"
	"github.com/pantrybook/backend/internal/database"
	"github.com/pantrybook/backend/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	authService := service.NewAuthService(db, "test-secret")
	catalogService := service.NewCatalogService()

	return SetupRouter(db, Handlers{
		User:     api.NewUserHandler(authService),
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(db, authService, catalogService, nil, nil),
		Author:   api.NewAuthorHandler(db, authService, catalogService),
		Cuisine:  api.NewCuisineHandler(db, authService),
		Category: api.NewCategoryHandler(db, authService),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRoutesMounted(t *testing.T) {
	router := setupRouter(t)

	paths := []string{
		"/api/v1/recipes",
		"/api/v1/authors",
		"/api/v1/cuisines",
		"/api/v1/categories",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestWritesRequireAuth(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/recipes", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
