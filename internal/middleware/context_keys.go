package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID on the request context.
// The unexported key type keeps it from colliding with other packages.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID set by
// AuthMiddleware, checking both the Gin keys and the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}
