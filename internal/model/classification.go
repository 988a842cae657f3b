package model

// MatchType identifies the pipeline stage that produced a classification,
// expressing the provenance of its confidence score.
type MatchType string

// Match type constants, in pipeline priority order.
const (
	MatchExact         MatchType = "exact"
	MatchClientKeyword MatchType = "client_keyword"
	MatchLearned       MatchType = "learned"
	MatchIndustry      MatchType = "industry"
	MatchKeyword       MatchType = "keyword"
	MatchRuleBased     MatchType = "rule_based"
	MatchNone          MatchType = "none"
)

// Alternative is a lower-ranked category suggestion.
type Alternative struct {
	Category   string
	Label      string
	Confidence float64
}

// ClassificationResult is the outcome of classifying a single statement
// line. It is produced per request and never persisted. Category is empty
// when no stage matched.
type ClassificationResult struct {
	Category      string
	CategoryLabel string
	MatchType     MatchType
	RuleID        string
	Alternatives  []Alternative
	Confidence    float64
}

// Matched reports whether any pipeline stage produced a category.
func (r ClassificationResult) Matched() bool {
	return r.Category != "" && r.MatchType != MatchNone
}

// LearnResult reports the outcome of ingesting a user correction.
type LearnResult struct {
	RuleID           string
	IsNew            bool
	ConflictResolved bool
}
