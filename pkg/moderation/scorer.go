package moderation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// FallbackScorer is the deterministic keyword scorer used when no remote
// model is configured or a remote call fails. It is stateless apart from its
// spec and safe for concurrent use.
type FallbackScorer struct {
	spec ConcernSpec
}

// NewFallbackScorer builds a scorer for one concern spec.
func NewFallbackScorer(spec ConcernSpec) *FallbackScorer {
	return &FallbackScorer{spec: spec}
}

// Concern returns the concern name this scorer covers.
func (s *FallbackScorer) Concern() string { return s.spec.Name }

// Score analyzes text against the concern's pattern table. It never fails:
// empty text yields a zero record, and a panic during matching is converted
// into a degraded record with SeverityError.
func (s *FallbackScorer) Score(text string) (rec AnalysisRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("fallback scorer panic for concern %q: %v", s.spec.Name, r)
			rec = s.errorRecord(text, fmt.Sprintf("internal scoring failure: %v", r))
		}
	}()

	rec = AnalysisRecord{
		SourceText: text,
		Concern:    s.spec.Name,
		Severity:   SeverityNone,
		Categories: map[string]CategoryMatch{},
		ModelUsed:  FallbackModelName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	lowered := strings.ToLower(text)
	tokens := strings.Fields(lowered)
	if len(tokens) == 0 {
		return rec
	}

	seen := map[string]bool{}
	var scoreSum float64
	var scored int

	// Categories are walked in sorted order so FlaggedTokens insertion
	// order is stable across runs.
	categories := make([]string, 0, len(s.spec.Patterns))
	for category := range s.spec.Patterns {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		keywords := s.spec.Patterns[category]
		match := CategoryMatch{Category: category}
		for _, token := range tokens {
			for _, kw := range keywords {
				// Substring containment, not word-boundary match: a
				// longer token that merely contains a keyword also
				// matches.
				if strings.Contains(token, kw) {
					match.MatchedTokens = append(match.MatchedTokens, token)
					match.Count++
					if !seen[token] {
						seen[token] = true
						rec.FlaggedTokens = append(rec.FlaggedTokens, token)
					}
					break
				}
			}
		}
		if match.Count > 0 {
			match.Score = capScore(float64(match.Count) * s.spec.PerMatchIncrement)
			rec.Categories[category] = match
			scoreSum += match.Score
			scored++
		}
	}

	if scored > 0 {
		rec.AggregateScore = scoreSum / float64(scored)
	}

	// Literal known-false claims override keyword scoring: the concern is
	// force-flagged at the claim's score and the correction outranks the
	// generic recommendation.
	var corrections []string
	for _, fact := range s.spec.FactualErrors {
		if strings.Contains(lowered, fact.Phrase) {
			corrections = append(corrections, fact.Correction)
			if fact.Score > rec.AggregateScore {
				rec.AggregateScore = fact.Score
			}
			fc := rec.Categories["factual_errors"]
			fc.Category = "factual_errors"
			fc.MatchedTokens = append(fc.MatchedTokens, fact.Phrase)
			fc.Count++
			if fact.Score > fc.Score {
				fc.Score = fact.Score
			}
			rec.Categories["factual_errors"] = fc
		}
	}

	rec.Severity = SeverityForScore(rec.AggregateScore)
	rec.Flagged = rec.Severity != SeverityNone
	if rec.Flagged {
		rec.Recommendations = append(corrections, s.spec.Recommendation)
	}
	return rec
}

// Analyze satisfies the Analyzer interface; context is accepted for interface
// symmetry but local scoring never blocks.
func (s *FallbackScorer) Analyze(_ context.Context, text string) AnalysisRecord {
	return s.Score(text)
}

func (s *FallbackScorer) errorRecord(text, msg string) AnalysisRecord {
	return AnalysisRecord{
		SourceText:      text,
		Concern:         s.spec.Name,
		Severity:        SeverityError,
		Categories:      map[string]CategoryMatch{},
		Recommendations: []string{msg},
		ModelUsed:       FallbackModelName,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

func capScore(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
