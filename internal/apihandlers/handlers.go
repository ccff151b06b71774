package apihandlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"trustlens/internal/app"
	"trustlens/internal/textprep"
	"trustlens/pkg/moderation"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// AnalyzeRequest asks for one concern's analysis of a piece of text.
type AnalyzeRequest struct {
	Text    string `json:"text"`
	Concern string `json:"concern"`
}

func (h *APIHandler) AnalyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" || req.Concern == "" {
		BadRequest(c, "missing required fields: text and concern")
		return
	}

	analyzer, ok := h.App.Analyzers[req.Concern]
	if !ok {
		NotFound(c, fmt.Sprintf("unknown concern %q", req.Concern))
		return
	}

	rec := analyzer.Analyze(c.Request.Context(), textprep.Clean(req.Text))
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

// ClassifyRequest carries one content item for full classification.
type ClassifyRequest struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata"`
}

func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Title == "" && req.Body == "" {
		BadRequest(c, "missing required fields: title or body")
		return
	}

	result := h.App.Classifier.ClassifyPost(c.Request.Context(), moderation.Content{
		Title:    req.Title,
		Body:     textprep.Clean(req.Body),
		Metadata: req.Metadata,
	})
	log.Infof("API classify: analysis_id=%s title=%q trust=%.2f", result.AnalysisID, req.Title, result.TrustScore)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// AgentsRequest selects an arbitrary subset of concern agents to run.
type AgentsRequest struct {
	Text   string   `json:"text"`
	Agents []string `json:"agents"`
}

// AgentsResponse bundles the per-agent records with the cross-agent risk
// summary.
type AgentsResponse struct {
	Results     map[string]moderation.AnalysisRecord `json:"results"`
	Summary     moderation.Summary                   `json:"summary"`
	OverallRisk moderation.Severity                  `json:"overall_risk"`
}

func (h *APIHandler) RunAgentsHandler(c *gin.Context) {
	var req AgentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		BadRequest(c, "missing required field: text")
		return
	}
	if len(req.Agents) == 0 {
		for name := range h.App.Analyzers {
			req.Agents = append(req.Agents, name)
		}
	}

	text := textprep.Clean(req.Text)
	resp := AgentsResponse{Results: make(map[string]moderation.AnalysisRecord, len(req.Agents))}
	var records []moderation.AnalysisRecord
	for _, name := range req.Agents {
		analyzer, ok := h.App.Analyzers[name]
		if !ok {
			NotFound(c, fmt.Sprintf("unknown agent %q", name))
			return
		}
		rec := analyzer.Analyze(c.Request.Context(), text)
		resp.Results[name] = rec
		records = append(records, rec)
	}

	resp.Summary = moderation.Summarize(records)
	resp.OverallRisk = moderation.OverallRisk(resp.Summary)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ClassifyURLRequest fetches a page and classifies its text content.
type ClassifyURLRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (h *APIHandler) ClassifyURLHandler(c *gin.Context) {
	var req ClassifyURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		BadRequest(c, "missing required field: url")
		return
	}

	text, err := h.App.Fetcher.FetchText(c.Request.Context(), req.URL)
	if err != nil {
		BadGateway(c, fmt.Sprintf("failed to fetch %s: %v", req.URL, err))
		return
	}

	title := req.Title
	if title == "" {
		title = req.URL
	}
	result := h.App.Classifier.ClassifyPost(c.Request.Context(), moderation.Content{
		Title:    title,
		Body:     textprep.Clean(text),
		Metadata: map[string]string{"url": req.URL},
	})
	c.JSON(http.StatusOK, gin.H{"data": result})
}
