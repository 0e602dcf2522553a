package reviews

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rai-review-backend/internal/augment"
	"rai-review-backend/internal/shared/server/respond"
)

func newRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateReviewReturnsDocument(t *testing.T) {
	r := newRouter(t, newService(t, nil))

	resp := post(r, "/api/v1/reviews", `{
		"project_name": "Loan triage",
		"project_description": "ML model ranking loan applications",
		"deployment_stage": "production",
		"ai_capabilities": ["decisions", "financial"],
		"user_count": 5000
	}`)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var doc augment.Document
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Equal(t, "Loan triage", doc.ProjectName)
	assert.NotEmpty(t, doc.ReviewID)
	assert.NotEmpty(t, doc.TierSummary.DeploymentReadiness)
}

func TestCreateReviewValidation(t *testing.T) {
	r := newRouter(t, newService(t, nil))

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"project_description": "chatbot"}`},
		{"blank name", `{"project_name": "   "}`},
		{"not an object", `["a", "b"]`},
		{"malformed", `{"project_name": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(r, "/api/v1/reviews", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)
			var body respond.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, ErrorCodeValidation, body.Error.Code)
		})
	}
}

func TestAssessReturnsPreparation(t *testing.T) {
	r := newRouter(t, newService(t, nil))

	resp := post(r, "/api/v1/assessments", `{"project_name": "Vision QA", "project_description": "computer vision defect detection on images"}`)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	for _, key := range []string{"assessment", "characteristics", "template", "risk_score", "catalog_version", "scenario_scores"} {
		assert.Contains(t, out, key)
	}
}

func TestCatalogInfo(t *testing.T) {
	svc := newService(t, nil)
	r := newRouter(t, svc)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Version   string   `json:"version"`
		Scenarios []string `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, svc.Catalog.Current().Version, out.Version)
	assert.Contains(t, out.Scenarios, "clinical_decision_support")
}
