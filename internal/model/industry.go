package model

import "time"

// Confidence bounds for industry patterns.
const (
	IndustryInitialConfidence = 0.50
	IndustryStep              = 0.02
	IndustryConfidenceCeiling = 0.95
)

// IndustryPattern is an anonymized, tenant-unattributed observation shared
// across every tenant in the same industry. The struct deliberately has no
// field naming the contributing tenant; only the aggregate count survives.
type IndustryPattern struct {
	UpdatedAt         time.Time
	IndustryID        string
	NormalizedPattern string
	SuggestedCategory string
	Confidence        float64
	OccurrenceCount   int
}
