package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"rai-review-backend/internal/resources/cache"
	"rai-review-backend/internal/reviews"
	"rai-review-backend/internal/services/health"
	"rai-review-backend/internal/shared/config"
	"rai-review-backend/internal/shared/metrics"
	"rai-review-backend/internal/shared/server/middleware"
	"rai-review-backend/internal/shared/server/respond"
)

const (
	rateLimitGroupDefault = "DEFAULT"
	rateLimitGroupReviews = "REVIEWS"
)

// RouterDeps carries the handlers the router mounts. A nil CacheHandler
// leaves the cache admin routes unregistered.
type RouterDeps struct {
	Config        config.Config
	ReviewHandler *reviews.Handler
	CacheHandler  *cache.Handler
	Health        *health.Service
	Limiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		otelgin.Middleware("rai-review-backend"),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateLimitGroupDefault,
			GroupFor:     rateLimitGroup,
			Limiter:      deps.Limiter,
			Rules:        rateLimitRules(cfg),
		}),
	)

	r.GET("/metrics", metrics.Handler())
	r.GET("/health", healthHandler(deps.Health))

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))
	if deps.ReviewHandler != nil {
		deps.ReviewHandler.RegisterRoutes(api)
	}
	if deps.CacheHandler != nil {
		deps.CacheHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	return r
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		st := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	}
}

// rateLimitGroup puts review generation in its own, stricter bucket.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/reviews" {
		return rateLimitGroupReviews
	}
	return rateLimitGroupDefault
}

func rateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.RateLimitPerSec <= 0 || cfg.RateLimitBurst <= 0 {
		return nil
	}
	return map[string]middleware.RateLimitRule{
		rateLimitGroupDefault: {Rate: cfg.RateLimitPerSec * 5, Burst: cfg.RateLimitBurst * 5},
		rateLimitGroupReviews: {Rate: cfg.RateLimitPerSec, Burst: cfg.RateLimitBurst},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
