package moderation

import "context"

// Severity buckets an aggregate score into a coarse risk level.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
	// SeverityError marks a degraded record produced when scoring itself
	// failed. It is never treated as a flag.
	SeverityError Severity = "error"
)

// CategoryMatch records the hits for one pattern category in one pass.
type CategoryMatch struct {
	Category      string   `json:"category"`
	Score         float64  `json:"score"`
	MatchedTokens []string `json:"matched_tokens"`
	Count         int      `json:"count"`
}

// AnalysisRecord is the result of analyzing one piece of text for one concern.
// It is always valid: failures are reported in-band via Severity/ModelUsed,
// never as an error return.
type AnalysisRecord struct {
	SourceText      string                   `json:"source_text"`
	Concern         string                   `json:"concern"`
	Flagged         bool                     `json:"flagged"`
	AggregateScore  float64                  `json:"aggregate_score"`
	Severity        Severity                 `json:"severity"`
	Categories      map[string]CategoryMatch `json:"categories"`
	FlaggedTokens   []string                 `json:"flagged_tokens"`
	Recommendations []string                 `json:"recommendations"`
	ModelUsed       string                   `json:"model_used"`
	Timestamp       string                   `json:"timestamp"`
}

// ClassificationResult combines all concern analyses for one content item.
type ClassificationResult struct {
	ID                string                    `json:"id,omitempty"`
	AnalysisID        string                    `json:"analysis_id"`
	Title             string                    `json:"title"`
	TrustScore        float64                   `json:"trust_score"`
	FlaggedCategories []string                  `json:"flagged_categories"`
	Analysis          map[string]AnalysisRecord `json:"analysis"`
}

// Content is one item to classify. Body is the analyzed text; Title is used
// when Body is empty. Metadata["id"] propagates into the result when present.
type Content struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata"`
}

// Analyzer produces an AnalysisRecord for one concern. Implementations must
// not return degraded output as an error; the record itself carries failure
// state.
type Analyzer interface {
	Analyze(ctx context.Context, text string) AnalysisRecord
	Concern() string
}

// Summary counts issues by severity across a set of analysis records.
type Summary struct {
	CriticalIssues int `json:"critical_issues"`
	HighIssues     int `json:"high_issues"`
	MediumIssues   int `json:"medium_issues"`
	LowIssues      int `json:"low_issues"`
}
