package apihandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlens/internal/app"
	"trustlens/internal/config"
	"trustlens/pkg/moderation"
)

type stubFetcher struct {
	text string
	err  error
}

func (s *stubFetcher) FetchText(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func newTestRouter(t *testing.T, fetcher *stubFetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	specs := moderation.DefaultConcernSpecs()
	analyzers := make(map[string]*moderation.ModelAnalyzer, len(specs))
	chain := make([]moderation.Analyzer, 0, len(specs))
	for _, spec := range specs {
		a := moderation.NewModelAnalyzer(spec, nil, 0)
		analyzers[spec.Name] = a
		chain = append(chain, a)
	}

	testApp := &app.App{
		Config:     &config.Config{},
		Classifier: moderation.NewClassifier(chain, nil),
		Analyzers:  analyzers,
		Fetcher:    fetcher,
	}

	h := NewAPIHandler(testApp)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/analyze", h.AnalyzeHandler)
	v1.POST("/classify", h.ClassifyHandler)
	v1.POST("/classify-url", h.ClassifyURLHandler)
	v1.POST("/agents/run", h.RunAgentsHandler)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeHandler(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/analyze", AnalyzeRequest{
		Text:    "you are stupid",
		Concern: moderation.ConcernToxicity,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data moderation.AnalysisRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Flagged)
	assert.Equal(t, moderation.SeverityLow, resp.Data.Severity)
	assert.InDelta(t, 0.3, resp.Data.AggregateScore, 1e-9)
}

func TestAnalyzeHandler_UnknownConcern(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/analyze", AnalyzeRequest{Text: "x", Concern: "sentiment"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeHandler_MissingFields(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/analyze", AnalyzeRequest{Text: "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyHandler(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/classify", ClassifyRequest{
		Title:    "post title",
		Body:     "everyone knows that paris is in spain",
		Metadata: map[string]string{"id": "abc-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data moderation.ClassificationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc-1", resp.Data.ID)
	assert.Contains(t, resp.Data.FlaggedCategories, "Misinformation")
	assert.Less(t, resp.Data.TrustScore, 1.0)
}

func TestClassifyHandler_EmptyContent(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/classify", ClassifyRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAgentsHandler(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/agents/run", AgentsRequest{
		Text:   "you are stupid",
		Agents: []string{moderation.ConcernToxicity, moderation.ConcernBias},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data AgentsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Results, 2)
	assert.Equal(t, moderation.Severity("low"), resp.Data.OverallRisk)
	assert.Equal(t, 1, resp.Data.Summary.LowIssues)
}

func TestRunAgentsHandler_UnknownAgent(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	w := postJSON(t, router, "/api/v1/agents/run", AgentsRequest{
		Text:   "x",
		Agents: []string{"nonexistent"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClassifyURLHandler(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{text: "this hoax is a coverup"})

	w := postJSON(t, router, "/api/v1/classify-url", ClassifyURLRequest{URL: "https://example.com/post"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data moderation.ClassificationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://example.com/post", resp.Data.Title)
	assert.Contains(t, resp.Data.FlaggedCategories, "Misinformation")
}

func TestClassifyURLHandler_FetchFailure(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{err: fmt.Errorf("connection refused")})

	w := postJSON(t, router, "/api/v1/classify-url", ClassifyURLRequest{URL: "https://example.com/x"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
