package model

import (
	"fmt"
	"time"
)

// Confidence bounds for learned rules.
const (
	RuleInitialConfidence = 0.70
	RuleAgreementStep     = 0.05
	RuleConflictDecay     = 0.10
	RuleConfidenceCeiling = 0.99
	RuleConfidenceFloor   = 0.10
)

// ScopeGlobal marks a rule visible to every tenant.
const ScopeGlobal = "global"

// TenantScope returns the rule scope string for a tenant.
func TenantScope(tenantID string) string {
	return fmt.Sprintf("tenant:%s", tenantID)
}

// LearnedRule is a categorization rule created and reinforced from user
// corrections. At most one rule exists per (normalized pattern, scope,
// category); contradictory rules for the same pattern and scope coexist
// with decayed confidence until one wins out.
type LearnedRule struct {
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ID                string
	RawPattern        string
	NormalizedPattern string
	Category          string
	Scope             string
	Confidence        float64
	ObservationCount  int
}
