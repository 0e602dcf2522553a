package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rai-review-backend/internal/shared/telemetry"
)

const corsMaxAge = 10 * time.Minute

// CORS allows browser calls from allowedOrigins. A "*" entry allows every
// origin. Requests from other origins are refused with 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        corsMaxAge,
	}

	allowAll := false
	var origins []string
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
		case o == "*":
			allowAll = true
		case strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://"):
			origins = append(origins, o)
		default:
			telemetry.Warn("cors.origin_ignored", map[string]any{"origin": o})
		}
	}

	switch {
	case allowAll:
		cfg.AllowAllOrigins = true
	case len(origins) > 0:
		cfg.AllowOrigins = origins
	default:
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(cfg)
}
