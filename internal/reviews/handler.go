package reviews

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rai-review-backend/internal/profile"
	"rai-review-backend/internal/shared/server/middleware"
	"rai-review-backend/internal/shared/server/respond"
)

const maxBodyBytes = 1 << 20

// Handler wires HTTP handlers to the review service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches review routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.createReview)
	rg.POST("/assessments", h.assess)
	rg.GET("/catalog", h.catalogInfo)
}

func (h *Handler) createReview(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	doc, err := h.Svc.Review(ctx, p)
	if err != nil {
		respondServiceError(c, err, "failed to run review")
		return
	}
	c.Set(middleware.ReviewIDKey, doc.ReviewID)
	c.Set(middleware.ReviewModeKey, doc.ReviewMode)
	c.Set(middleware.GenerationKey, doc.Generation.Outcome)
	respond.OK(c, doc)
}

func (h *Handler) assess(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	prep, err := h.Svc.Explain(ctx, p)
	if err != nil {
		respondServiceError(c, err, "failed to assess profile")
		return
	}
	respond.OK(c, prep)
}

func (h *Handler) catalogInfo(c *gin.Context) {
	cat := h.Svc.Catalog.Current()
	if cat == nil {
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeInternal, "catalog not loaded", nil)
		return
	}
	respond.OK(c, gin.H{
		"version":         cat.Version,
		"scenarios":       cat.ScenarioIDs(),
		"tools":           len(cat.Tools),
		"architectures":   len(cat.Architectures),
		"recommendations": len(cat.Recommendations),
	})
}

func bindProfile(c *gin.Context) (profile.Profile, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "failed to read request body", nil)
		return nil, false
	}
	if len(body) > maxBodyBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "request body too large", nil)
		return nil, false
	}
	p, err := profile.FromJSON(body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "request body must be a JSON object", nil)
		return nil, false
	}
	return p, true
}

func respondServiceError(c *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, verr.Message, []map[string]string{
			{"field": verr.Field, "issue": "invalid"},
		})
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, message, nil)
	}
}
