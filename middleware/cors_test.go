package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(" https://nadea.id/ , https://admin.nadea.id"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := map[string]struct {
		origin  string
		allowed bool
	}{
		"dev storefront":      {origin: "http://localhost:5173", allowed: true},
		"trailing slash trim": {origin: "https://nadea.id", allowed: true},
		"second origin":       {origin: "https://admin.nadea.id", allowed: true},
		"unknown":             {origin: "https://evil.example", allowed: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if tc.allowed {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, tc.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code)
			}
		})
	}
}
