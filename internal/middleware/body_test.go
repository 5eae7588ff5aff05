package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(32))
	r.POST("/", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		c.JSON(http.StatusOK, body)
	})

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`))
	small.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := perform(t, r, small)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a":"b"}`, w.Body.String())

	large := `{"a":"` + strings.Repeat("b", 64) + `"}`
	for _, contentType := range []string{"application/json", "text/plain", ""} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(large))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		w = perform(t, r, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, "content type %q", contentType)
	}
}

func TestBodyLimitIgnoresEmptyBodies(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(0))
	r.GET("/", okHandler)

	w := perform(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
