package middlewares

import (
	"net/http"
	"strings"

	"fittrack/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin key holding the authenticated user id.
const ContextUserID = "userID"

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// disables authentication.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		var token string
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// browsers cannot set headers on a websocket handshake
			token = c.Query("access_token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := utils.ParseJWT(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// RequireOwner rejects requests whose :userId differs from the token's user.
// It is a no-op when authentication is disabled.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		authed := c.GetString(ContextUserID)
		if authed == "" {
			c.Next()
			return
		}
		if param := c.Param("userId"); param != "" && param != authed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
