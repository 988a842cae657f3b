package model

import "time"

// Audit event kinds recorded by the learning path.
const (
	EventRuleLearned          = "rule_learned"
	EventIndustryContribution = "industry_contribution"
)

// AuditEvent is one entry in the engine's audit trail.
type AuditEvent struct {
	CreatedAt time.Time
	Kind      string
	Payload   map[string]any
	ID        int64
}
