package moderation

// Severity thresholds over an aggregate score. Shared by every concern.
const (
	criticalThreshold = 0.8
	highThreshold     = 0.6
	mediumThreshold   = 0.4
	lowThreshold      = 0.2
)

// SeverityForScore buckets an aggregate score. It is a pure step function:
// the same score always yields the same severity.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= criticalThreshold:
		return SeverityCritical
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	case score >= lowThreshold:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// OverallRisk reduces issue counts across an arbitrary set of analysis
// records to the single highest non-empty severity bucket.
func OverallRisk(s Summary) Severity {
	switch {
	case s.CriticalIssues > 0:
		return SeverityCritical
	case s.HighIssues > 0:
		return SeverityHigh
	case s.MediumIssues > 0:
		return SeverityMedium
	case s.LowIssues > 0:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// Summarize tallies flagged records into severity buckets for OverallRisk.
func Summarize(records []AnalysisRecord) Summary {
	var s Summary
	for _, rec := range records {
		switch rec.Severity {
		case SeverityCritical:
			s.CriticalIssues++
		case SeverityHigh:
			s.HighIssues++
		case SeverityMedium:
			s.MediumIssues++
		case SeverityLow:
			s.LowIssues++
		}
	}
	return s
}
