package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldworks/veldbooks/internal/common"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/service"
)

func setupStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newRule(pattern, category, scope string) *model.LearnedRule {
	return &model.LearnedRule{
		ID:                uuid.NewString(),
		RawPattern:        pattern,
		NormalizedPattern: pattern,
		Category:          category,
		Scope:             scope,
		Confidence:        model.RuleInitialConfidence,
		ObservationCount:  1,
	}
}

func TestUpsertRuleObservation(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	stored, isNew, err := store.UpsertRuleObservation(ctx, newRule("engen fuel", "FUEL", model.ScopeGlobal))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 1, stored.ObservationCount)
	assert.InDelta(t, 0.70, stored.Confidence, 1e-9)

	// Repeat agreement reinforces in place, no new row.
	again, isNew, err := store.UpsertRuleObservation(ctx, newRule("engen fuel", "FUEL", model.ScopeGlobal))
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, stored.ID, again.ID)
	assert.Equal(t, 2, again.ObservationCount)
	assert.InDelta(t, 0.75, again.Confidence, 1e-9)
}

func TestUpsertRuleObservationConfidenceCeiling(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	var last *model.LearnedRule
	for i := 0; i < 10; i++ {
		stored, _, err := store.UpsertRuleObservation(ctx, newRule("eskom prepaid", "ELECTRICITY", model.ScopeGlobal))
		require.NoError(t, err)
		last = stored
	}

	assert.Equal(t, 10, last.ObservationCount)
	assert.InDelta(t, model.RuleConfidenceCeiling, last.Confidence, 1e-9)
}

func TestDecayConflictingRules(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	scope := model.TenantScope("7")

	_, _, err := store.UpsertRuleObservation(ctx, newRule("engen fuel", "FUEL", scope))
	require.NoError(t, err)

	decayed, err := store.DecayConflictingRules(ctx, "engen fuel", scope, "TRAVEL")
	require.NoError(t, err)
	assert.Equal(t, 1, decayed)

	// The contradicted rule survives with exactly 0.10 less confidence.
	filter := service.RuleFilter{Scopes: []string{scope}, Category: "FUEL"}
	rules, err := store.FindRules(ctx, filter)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.InDelta(t, 0.60, rules[0].Confidence, 1e-9)

	// Decay floors at 0.10, never deletes.
	for i := 0; i < 10; i++ {
		_, err = store.DecayConflictingRules(ctx, "engen fuel", scope, "TRAVEL")
		require.NoError(t, err)
	}
	rules, err = store.FindRules(ctx, filter)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.InDelta(t, model.RuleConfidenceFloor, rules[0].Confidence, 1e-9)
}

func TestGetRule(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	scope := model.TenantScope("7")

	rule, err := store.GetRule(ctx, "engen fuel", scope)
	require.NoError(t, err)
	assert.Nil(t, rule)

	_, _, err = store.UpsertRuleObservation(ctx, newRule("engen fuel", "TRAVEL", scope))
	require.NoError(t, err)

	rule, err = store.GetRule(ctx, "engen fuel", scope)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, "TRAVEL", rule.Category)

	// Tenant scope does not leak into global lookups.
	rule, err = store.GetRule(ctx, "engen fuel", model.ScopeGlobal)
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestGetRulePrefersStrongerCategory(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	// Two contradictory rules for the same key; the reinforced one wins.
	_, _, err := store.UpsertRuleObservation(ctx, newRule("makro purchase", "TOOLS", model.ScopeGlobal))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, _, err = store.UpsertRuleObservation(ctx, newRule("makro purchase", "STATIONERY", model.ScopeGlobal))
		require.NoError(t, err)
	}

	rule, err := store.GetRule(ctx, "makro purchase", model.ScopeGlobal)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, "STATIONERY", rule.Category)
}

func TestFindRulesFilter(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	_, _, err := store.UpsertRuleObservation(ctx, newRule("vodacom airtime", "TELEPHONE", model.ScopeGlobal))
	require.NoError(t, err)
	_, _, err = store.UpsertRuleObservation(ctx, newRule("engen fuel", "FUEL", model.TenantScope("7")))
	require.NoError(t, err)
	_, _, err = store.UpsertRuleObservation(ctx, newRule("shell garage", "FUEL", model.TenantScope("9")))
	require.NoError(t, err)

	rules, err := store.FindRules(ctx, service.RuleFilter{
		Scopes: []string{model.ScopeGlobal, model.TenantScope("7")},
	})
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	rules, err = store.FindRules(ctx, service.RuleFilter{Category: "FUEL"})
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	rules, err = store.FindRules(ctx, service.RuleFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestDatabaseFailuresSatisfyStorageUnavailable(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	require.NoError(t, store.Close())

	_, err := store.GetRule(ctx, "engen fuel", model.ScopeGlobal)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, _, err = store.UpsertRuleObservation(ctx, newRule("engen fuel", "FUEL", model.ScopeGlobal))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
