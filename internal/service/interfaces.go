// Package service defines the contracts between the allocation engine and
// its collaborators. The engine assumes no query language, only these
// primitives: keyed reads, upserts-with-increment, and bounded filtered
// listings.
package service

import (
	"context"
	"time"

	"github.com/veldworks/veldbooks/internal/model"
)

// RuleFilter bounds a learned-rule listing.
type RuleFilter struct {
	// Scopes restricts results to the given rule scopes. Empty means all.
	Scopes []string
	// Category restricts results to a single category code. Empty means all.
	Category string
	Limit    int
}

// Storage defines the persistence contract for the allocation engine.
// Implementations must make every *WithIncrement operation atomic per key;
// read-then-write in application code would lose concurrent updates.
type Storage interface {
	// Learned rule operations.
	GetRule(ctx context.Context, normalizedPattern, scope string) (*model.LearnedRule, error)
	FindRules(ctx context.Context, filter RuleFilter) ([]model.LearnedRule, error)
	// UpsertRuleObservation creates the rule at its initial confidence or,
	// when a rule with the same (pattern, scope, category) key exists,
	// atomically increments its observation count and confidence. Returns
	// the stored rule and whether it was created.
	UpsertRuleObservation(ctx context.Context, rule *model.LearnedRule) (*model.LearnedRule, bool, error)
	// DecayConflictingRules atomically lowers the confidence of every rule
	// sharing (normalizedPattern, scope) but holding a different category.
	// Returns the number of rules decayed.
	DecayConflictingRules(ctx context.Context, normalizedPattern, scope, keepCategory string) (int, error)

	// Industry pattern operations.
	GetIndustryPattern(ctx context.Context, industryID, normalizedPattern string) (*model.IndustryPattern, error)
	FindIndustryPatterns(ctx context.Context, industryID string, limit int) ([]model.IndustryPattern, error)
	// UpsertIndustryObservation creates or reinforces an anonymized
	// industry aggregate. The write records only the occurrence count,
	// never the contributing tenant.
	UpsertIndustryObservation(ctx context.Context, industryID, normalizedPattern, category string) (*model.IndustryPattern, error)
	CountIndustryPatterns(ctx context.Context, industryID string) (int, error)

	// Tenant operations.
	GetTenantSettings(ctx context.Context, tenantID string) (*model.TenantSettings, error)
	SaveTenantSettings(ctx context.Context, settings *model.TenantSettings) error
	GetTenantCategories(ctx context.Context, tenantID string) ([]model.TenantCategory, error)
	SaveTenantCategory(ctx context.Context, category *model.TenantCategory) error

	// Audit trail.
	RecordEvent(ctx context.Context, kind string, payload map[string]any) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
