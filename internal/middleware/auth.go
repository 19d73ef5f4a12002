package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const AdminSessionKey = "is_admin"

// AuthRequired ensures the admin session is present
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		isAdmin, ok := session.Get(AdminSessionKey).(bool)
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the current session is an admin session
func IsAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	isAdmin, ok := session.Get(AdminSessionKey).(bool)
	return ok && isAdmin
}
