package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aaaas/sequence-api/pkg/log"
)

// CORSMiddleware lets the listed origins call the API with the session cookie.
// Origins not on the list get no CORS headers. An empty list returns nil, in
// which case only same-origin callers are served.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			origins = append(origins, o)
		} else if o != "" {
			log.Warnf("ignoring allowed origin %q, it must start with http:// or https://", o)
		}
	}
	if len(origins) == 0 {
		return nil
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
