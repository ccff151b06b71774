package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ModelProvider issues a single structured-analysis attempt against a remote
// model. Implementations get exactly one call per analysis; retries are the
// analyzer's job (it has none — it moves to the next provider instead).
type ModelProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// DefaultCallTimeout bounds each remote attempt when the analyzer is built
// without an explicit timeout.
const DefaultCallTimeout = 15 * time.Second

// ModelAnalyzer tries remote providers in order and falls back to the
// keyword scorer when none succeeds. Its Analyze method never fails: the
// caller always receives a usable AnalysisRecord.
type ModelAnalyzer struct {
	spec      ConcernSpec
	fallback  *FallbackScorer
	providers []ModelProvider
	timeout   time.Duration

	// ExcerptFn, when set, shortens the text placed in the remote prompt.
	// Scoring fallback always sees the full text.
	ExcerptFn func(string) string
}

// NewModelAnalyzer builds the analysis wrapper for one concern. With no
// providers it degrades to a plain fallback scorer.
func NewModelAnalyzer(spec ConcernSpec, providers []ModelProvider, timeout time.Duration) *ModelAnalyzer {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &ModelAnalyzer{
		spec:      spec,
		fallback:  NewFallbackScorer(spec),
		providers: providers,
		timeout:   timeout,
	}
}

// Concern returns the concern name this analyzer covers.
func (a *ModelAnalyzer) Concern() string { return a.spec.Name }

// Analyze runs the provider chain: one bounded attempt per provider, no
// retries, keyword fallback when every attempt fails.
func (a *ModelAnalyzer) Analyze(ctx context.Context, text string) AnalysisRecord {
	if len(a.providers) == 0 {
		return a.fallback.Score(text)
	}

	promptText := text
	if a.ExcerptFn != nil {
		promptText = a.ExcerptFn(text)
	}
	prompt := buildAnalysisPrompt(a.spec, promptText)

	for _, provider := range a.providers {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		reply, err := provider.Complete(callCtx, prompt)
		cancel()
		if err != nil {
			log.Warnf("model %s failed for concern %q, trying next: %v", provider.Name(), a.spec.Name, err)
			continue
		}
		rec, err := a.recordFromReply(text, reply, provider.Name())
		if err != nil {
			log.Warnf("model %s returned unusable reply for concern %q: %v", provider.Name(), a.spec.Name, err)
			continue
		}
		return rec
	}

	log.Debugf("all model providers exhausted for concern %q, using keyword fallback", a.spec.Name)
	return a.fallback.Score(text)
}

// modelReply is the JSON shape the prompt asks the model to produce.
type modelReply struct {
	Score      float64 `json:"score"`
	Categories map[string]struct {
		Score         float64  `json:"score"`
		MatchedTokens []string `json:"matched_tokens"`
	} `json:"categories"`
	Recommendations []string `json:"recommendations"`
}

func (a *ModelAnalyzer) recordFromReply(text, reply, modelName string) (AnalysisRecord, error) {
	raw, err := extractJSONObject(reply)
	if err != nil {
		return AnalysisRecord{}, err
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return AnalysisRecord{}, fmt.Errorf("parse model reply: %w", err)
	}

	rec := AnalysisRecord{
		SourceText:      text,
		Concern:         a.spec.Name,
		AggregateScore:  clamp01(parsed.Score),
		Categories:      map[string]CategoryMatch{},
		Recommendations: parsed.Recommendations,
		ModelUsed:       modelName,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	for name, cat := range parsed.Categories {
		rec.Categories[name] = CategoryMatch{
			Category:      name,
			Score:         clamp01(cat.Score),
			MatchedTokens: cat.MatchedTokens,
			Count:         len(cat.MatchedTokens),
		}
		for _, token := range cat.MatchedTokens {
			rec.FlaggedTokens = appendUnique(rec.FlaggedTokens, token)
		}
	}

	// Severity is always recomputed locally; the model's own labels, if
	// any, are not trusted.
	rec.Severity = SeverityForScore(rec.AggregateScore)
	rec.Flagged = rec.Severity != SeverityNone
	if rec.Flagged && len(rec.Recommendations) == 0 {
		rec.Recommendations = []string{a.spec.Recommendation}
	}
	return rec, nil
}

var (
	codeFenceRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractJSONObject pulls the first JSON object out of a chat reply, which
// models routinely wrap in prose or markdown fences.
func extractJSONObject(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if m := codeFenceRe.FindStringSubmatch(reply); m != nil {
		reply = strings.TrimSpace(m[1])
	}
	obj := jsonObjectRe.FindString(reply)
	if obj == "" {
		return "", fmt.Errorf("no JSON object in model reply")
	}
	return obj, nil
}

func buildAnalysisPrompt(spec ConcernSpec, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following content for %s.\n\n", spec.PromptFocus)
	fmt.Fprintf(&b, "Content: %q\n\n", text)
	b.WriteString("Score from 0.0 to 1.0 where 1.0 is the most severe.\n")
	b.WriteString("Respond with only a JSON object in this exact shape:\n")
	b.WriteString(`{"score": 0.0, "categories": {"name": {"score": 0.0, "matched_tokens": []}}, "recommendations": []}`)
	b.WriteString("\n")
	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
