package middleware

import (
	"errors"
	"net/http"

	"github.com/forgeflow/forgeflow-api/config"
	"github.com/forgeflow/forgeflow-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const workshopNameKey = "workshop_name"

// RequireWorkshopSession gates the manufacturer routes. There is no
// credential behind it: the singleton session row existing is the whole
// login, so the gate only checks presence and stashes the workshop name
// in the request context.
func RequireWorkshopSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := config.GetDB()

		var session models.WorkshopSession
		err := db.First(&session, "id = ?", models.WorkshopSessionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NO_SESSION",
						"message": "No active workshop session. Log in first.",
					},
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "STORE_ERROR",
						"message": "Failed to load workshop session",
					},
				})
			}
			c.Abort()
			return
		}

		c.Set(workshopNameKey, session.WorkshopName)
		c.Next()
	}
}

// GetWorkshopName extracts the active workshop name from the Gin context
func GetWorkshopName(c *gin.Context) (string, error) {
	name, exists := c.Get(workshopNameKey)
	if !exists {
		return "", &SessionError{Code: "MISSING_SESSION", Message: "Workshop name not found in context"}
	}

	nameStr, ok := name.(string)
	if !ok {
		return "", &SessionError{Code: "INVALID_SESSION", Message: "Workshop name is not a string"}
	}

	return nameStr, nil
}

// SetWorkshopName stashes a workshop name in the Gin context (primarily for
// testing handlers without the full middleware chain)
func SetWorkshopName(c *gin.Context, name string) {
	c.Set(workshopNameKey, name)
}

// SessionError represents a session resolution error
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return e.Message
}
