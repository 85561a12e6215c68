package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/calorie-tracker-api/internal/auth"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth(provider auth.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := provider.CurrentUser(c)
		if err != nil {
			if !errors.Is(err, auth.ErrNotAuthenticated) {
				logrus.WithError(err).Error("failed to resolve session user")
				apierrors.InternalError(c, "")
				c.Abort()
				return
			}
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
