package moderation

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Classifier runs every concern analyzer over one content item and combines
// the results into a single trust verdict.
type Classifier struct {
	analyzers []Analyzer
	weights   map[string]float64
}

// NewClassifier builds a classifier over the given analyzers. Weights fall
// back to ConcernWeights when nil; an analyzer whose concern has no weight
// contributes nothing to the trust score but still appears in the analysis
// map.
func NewClassifier(analyzers []Analyzer, weights map[string]float64) *Classifier {
	if weights == nil {
		weights = ConcernWeights
	}
	return &Classifier{analyzers: analyzers, weights: weights}
}

// NewFallbackClassifier builds a classifier over plain keyword scorers for
// the default concern set. Used when no remote model is configured.
func NewFallbackClassifier() *Classifier {
	specs := DefaultConcernSpecs()
	analyzers := make([]Analyzer, 0, len(specs))
	for _, spec := range specs {
		analyzers = append(analyzers, NewFallbackScorer(spec))
	}
	return NewClassifier(analyzers, nil)
}

// ClassifyPost analyzes one content item across all concerns. Concerns run
// concurrently; each gets the same text and owns its own record. The method
// never fails: degraded concern records reduce precision, not availability.
func (c *Classifier) ClassifyPost(ctx context.Context, content Content) ClassificationResult {
	text := content.Body
	if text == "" {
		text = content.Title
	}

	result := ClassificationResult{
		AnalysisID: uuid.NewString(),
		Title:      content.Title,
		Analysis:   make(map[string]AnalysisRecord, len(c.analyzers)),
	}
	if content.Metadata != nil {
		result.ID = content.Metadata["id"]
	}

	records := make([]AnalysisRecord, len(c.analyzers))
	var wg sync.WaitGroup
	for i, analyzer := range c.analyzers {
		wg.Add(1)
		go func(i int, analyzer Analyzer) {
			defer wg.Done()
			records[i] = analyzer.Analyze(ctx, text)
		}(i, analyzer)
	}
	wg.Wait()

	var penalty float64
	var flagged []string
	seenFlags := map[string]bool{}
	for i, analyzer := range c.analyzers {
		rec := records[i]
		result.Analysis[analyzer.Concern()] = rec

		// Errored concerns keep their numeric contribution but are never
		// listed as flags; partial failure degrades silently.
		penalty += rec.AggregateScore * c.weights[analyzer.Concern()]
		if rec.Flagged && rec.Severity != SeverityError {
			name := displayNameFor(analyzer.Concern())
			if !seenFlags[name] {
				seenFlags[name] = true
				flagged = append(flagged, name)
			}
		}
	}

	result.TrustScore = round2(clamp01(1 - penalty))
	result.FlaggedCategories = flagged

	log.Debugf("classified %q analysis_id=%s trust=%.2f flags=%v",
		content.Title, result.AnalysisID, result.TrustScore, flagged)
	return result
}

// displayNameFor collapses concern names to display flags; both toxicity
// passes fold into the single "Toxicity" flag.
func displayNameFor(concern string) string {
	if spec, ok := SpecByName(concern); ok {
		return spec.DisplayName
	}
	return concern
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
