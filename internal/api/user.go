package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybook/backend/internal/service"
)

// UserHandler exposes user registration
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// RegisterRoutes registers user routes on the given router group
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", h.CreateUser)
}

// CreateUser registers a new user. The email must not already be taken.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondIntegrityError(c, err, fmt.Sprintf("The User, %s, already exists", req.Email))
		return
	}

	c.JSON(http.StatusCreated, user)
}
