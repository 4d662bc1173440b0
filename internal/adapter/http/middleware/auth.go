package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	useruc "user-directory-service/internal/usecase/user"
	"user-directory-service/pkg/token"
)

// UserIDKey is the gin context key under which the authenticated user id is stored.
const UserIDKey = "auth_user_id"

// RequireAuth gates a route group behind a valid bearer token naming an
// existing user. Signup and login stay outside this gate.
func RequireAuth(tokens *token.Issuer, directory useruc.Directory, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "missing bearer token",
			})
			return
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, prefix))
		if err != nil {
			log.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "invalid or expired token",
			})
			return
		}

		// A token that outlives its account must stop working
		if _, err := directory.GetUser(c.Request.Context(), useruc.GetUserRequest{ID: userID}); err != nil {
			log.Warn("token subject no longer exists", zap.Int64("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
