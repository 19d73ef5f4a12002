package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK JSON success helper
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail JSON error helper, keeps the error envelope consistent
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// NotFound 404 helper
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}
