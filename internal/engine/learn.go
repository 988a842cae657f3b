package engine

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/veldworks/veldbooks/internal/common"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/normalize"
)

const auditDescriptionLimit = 120

// Learn ingests a user's confirmed or corrected category for a description.
// Agreement reinforces the existing rule; a contradiction soft-decays the
// old rule and creates the new one. The primary rule write propagates
// failure; the anonymized industry contribution runs out-of-band and can
// never fail the learn.
func (e *Engine) Learn(ctx context.Context, description, confirmedCategory string, tenant model.TenantContext, feedback string) (model.LearnResult, error) {
	if description == "" {
		return model.LearnResult{}, fmt.Errorf("%w: description is required", common.ErrInvalidInput)
	}
	if confirmedCategory == "" {
		return model.LearnResult{}, fmt.Errorf("%w: category is required", common.ErrInvalidInput)
	}

	pattern := normalize.Normalize(description)
	if pattern == "" {
		// A pattern of only digits and punctuation can never match again;
		// storing it would create an unreachable rule.
		return model.LearnResult{}, fmt.Errorf("%w: description %q has no matchable content", common.ErrInvalidInput, description)
	}

	scope := tenant.Scope()
	rule := &model.LearnedRule{
		ID:                uuid.NewString(),
		RawPattern:        description,
		NormalizedPattern: pattern,
		Category:          confirmedCategory,
		Confidence:        model.RuleInitialConfidence,
		ObservationCount:  1,
		Scope:             scope,
	}

	stored, isNew, err := e.store.UpsertRuleObservation(ctx, rule)
	if err != nil {
		return model.LearnResult{}, fmt.Errorf("failed to store correction: %w", err)
	}

	conflictResolved := false
	if isNew {
		decayed, decayErr := e.store.DecayConflictingRules(ctx, pattern, scope, confirmedCategory)
		if decayErr != nil {
			return model.LearnResult{}, fmt.Errorf("failed to resolve conflicting rules: %w", decayErr)
		}
		conflictResolved = decayed > 0
	}

	payload := map[string]any{
		"description":       truncate(description, auditDescriptionLimit),
		"pattern":           pattern,
		"category":          confirmedCategory,
		"scope":             scope,
		"rule_id":           stored.ID,
		"is_new":            isNew,
		"conflict_resolved": conflictResolved,
	}
	if feedback != "" {
		payload["feedback"] = truncate(feedback, auditDescriptionLimit)
	}
	if auditErr := e.store.RecordEvent(ctx, model.EventRuleLearned, payload); auditErr != nil {
		slog.Warn("failed to record learn audit event", "rule_id", stored.ID, "error", auditErr)
	}

	slog.Debug("learned rule",
		"rule_id", stored.ID,
		"category", confirmedCategory,
		"scope", scope,
		"is_new", isNew,
		"observation_count", stored.ObservationCount,
		"conflict_resolved", conflictResolved)

	if tenant.Scoped() {
		e.contributions.Add(1)
		go func() {
			defer e.contributions.Done()
			e.contribute(context.WithoutCancel(ctx), description, confirmedCategory, tenant)
		}()
	}

	return model.LearnResult{
		RuleID:           stored.ID,
		IsNew:            isNew,
		ConflictResolved: conflictResolved,
	}, nil
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
