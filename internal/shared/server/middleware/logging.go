package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rai-review-backend/internal/shared/telemetry"
)

// Context keys handlers may set for the request log line.
const (
	ReviewIDKey   = "reviewId"
	ReviewModeKey = "reviewMode"
	GenerationKey = "generationOutcome"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		reviewID, _ := c.Get(ReviewIDKey)
		reviewMode, _ := c.Get(ReviewModeKey)
		outcome, _ := c.Get(GenerationKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":         RequestIDFromContext(c),
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			"route":              c.FullPath(),
			"status":             c.Writer.Status(),
			"duration_ms":        float64(latency.Microseconds()) / 1000.0,
			"review_id":          reviewID,
			"review_mode":        reviewMode,
			"generation_outcome": outcome,
			"client_ip":          c.ClientIP(),
			"user_agent":         c.Request.UserAgent(),
		})
	}
}
