package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the identity the auth middleware stored on the context
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// Postgres reports "duplicate key value violates unique constraint";
// SQLite reports "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint")
}

func respondNotFound(c *gin.Context, resource, id string) {
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s with id: %s was not found", resource, id)})
}

func respondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to perform requested action"})
}

// respondIntegrityError maps a storage failure to 409 when it is a
// uniqueness violation, otherwise 500.
func respondIntegrityError(c *gin.Context, err error, conflictMsg string) {
	if isUniqueViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": conflictMsg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
