package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrybook/backend/internal/database"
	"github.com/pantrybook/backend/internal/service"
)

// setupTestDB opens an isolated in-memory database and migrates the schema.
// Each test gets its own shared-cache name so parallel tests do not see
// each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// testEnv bundles everything a handler test needs
type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Auth   *service.AuthService
}

// setupTestRouter builds a router with every handler registered against an
// in-memory database. Image uploads and rate limiting stay disabled.
func setupTestRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	catalogService := service.NewCatalogService()

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	NewUserHandler(authService).RegisterRoutes(v1)
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(db, authService, catalogService, nil, nil).RegisterRoutes(v1)
	NewAuthorHandler(db, authService, catalogService).RegisterRoutes(v1)
	NewCuisineHandler(db, authService).RegisterRoutes(v1)
	NewCategoryHandler(db, authService).RegisterRoutes(v1)

	return &testEnv{Router: router, DB: db, Auth: authService}
}

// createTestUser registers a user through the auth service and returns the
// id plus a valid bearer token.
func (env *testEnv) createTestUser(t *testing.T, email string) (uuid.UUID, string) {
	user, err := env.Auth.Register(email, "testpassword123")
	require.NoError(t, err)

	token, err := env.Auth.Login(email, "testpassword123")
	require.NoError(t, err)

	return user.ID, token
}

// performRequest makes an HTTP request against the test router. An empty
// token leaves the Authorization header unset.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into out
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
