package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst and writes the 4xx response
// itself when that fails.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
	return false
}
