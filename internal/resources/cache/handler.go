package cache

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rai-review-backend/internal/shared/server/respond"
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

// Handler exposes cache statistics and clearing over HTTP.
type Handler struct {
	Cache *Cache
}

func NewHandler(c *Cache) *Handler {
	return &Handler{Cache: c}
}

// RegisterRoutes attaches cache admin routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cache/stats", h.stats)
	rg.DELETE("/cache", h.clear)
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.Cache.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to read cache stats", nil)
		return
	}
	respond.OK(c, st)
}

func (h *Handler) clear(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("kind"))
	if kind != "" && !ValidKind(kind) {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unknown cache kind", []map[string]string{
			{"field": "kind", "issue": "invalid"},
		})
		return
	}
	removed, err := h.Cache.Clear(c.Request.Context(), kind)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to clear cache", gin.H{"removed": removed})
		return
	}
	respond.OK(c, gin.H{"removed": removed, "kind": kind})
}

// ValidKind reports whether kind names a cached data kind.
func ValidKind(kind string) bool {
	switch kind {
	case KindGitHub, KindArchitectures, KindTools, KindWebSearch:
		return true
	}
	return false
}
