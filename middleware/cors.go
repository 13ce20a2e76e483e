package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const devOrigin = "http://localhost:5173"

// CORSMiddleware allows the local storefront plus every origin in the comma-separated originURL.
func CORSMiddleware(originURL string) gin.HandlerFunc {
	origins := []string{devOrigin}
	for _, o := range strings.Split(originURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" && o != devOrigin {
			origins = append(origins, o)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
