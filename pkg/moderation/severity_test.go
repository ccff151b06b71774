package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeverityNone},
		{0.15, SeverityNone},
		{0.19999, SeverityNone},
		{0.2, SeverityLow},
		{0.39, SeverityLow},
		{0.4, SeverityMedium},
		{0.59, SeverityMedium},
		{0.6, SeverityHigh},
		{0.65, SeverityHigh},
		{0.79, SeverityHigh},
		{0.8, SeverityCritical},
		{1.0, SeverityCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeverityForScore(tc.score), "score=%v", tc.score)
	}
}

func TestOverallRisk(t *testing.T) {
	cases := []struct {
		name    string
		summary Summary
		want    Severity
	}{
		{"empty", Summary{}, SeverityNone},
		{"low only", Summary{LowIssues: 3}, SeverityLow},
		{"high beats medium", Summary{HighIssues: 1, MediumIssues: 2}, SeverityHigh},
		{"critical beats everything", Summary{CriticalIssues: 1, HighIssues: 5, MediumIssues: 5, LowIssues: 5}, SeverityCritical},
		{"medium only", Summary{MediumIssues: 1}, SeverityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OverallRisk(tc.summary))
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []AnalysisRecord{
		{Severity: SeverityCritical},
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityNone},
		{Severity: SeverityError},
		{Severity: SeverityLow},
	}

	s := Summarize(records)

	assert.Equal(t, Summary{CriticalIssues: 1, HighIssues: 2, LowIssues: 1}, s)
	assert.Equal(t, SeverityCritical, OverallRisk(s))
}

func TestConcernWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range ConcernWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
