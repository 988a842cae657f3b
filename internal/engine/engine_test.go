package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldworks/veldbooks/internal/catalog"
	"github.com/veldworks/veldbooks/internal/common"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/service"
	"github.com/veldworks/veldbooks/internal/testutil"
)

var errStoreDown = fmt.Errorf("%w: connection refused", common.ErrStorageUnavailable)

// failingStore simulates a database that is down: every operation fails the
// way the SQLite layer reports it.
type failingStore struct{}

func (failingStore) GetRule(context.Context, string, string) (*model.LearnedRule, error) {
	return nil, errStoreDown
}

func (failingStore) FindRules(context.Context, service.RuleFilter) ([]model.LearnedRule, error) {
	return nil, errStoreDown
}

func (failingStore) UpsertRuleObservation(context.Context, *model.LearnedRule) (*model.LearnedRule, bool, error) {
	return nil, false, errStoreDown
}

func (failingStore) DecayConflictingRules(context.Context, string, string, string) (int, error) {
	return 0, errStoreDown
}

func (failingStore) GetIndustryPattern(context.Context, string, string) (*model.IndustryPattern, error) {
	return nil, errStoreDown
}

func (failingStore) FindIndustryPatterns(context.Context, string, int) ([]model.IndustryPattern, error) {
	return nil, errStoreDown
}

func (failingStore) UpsertIndustryObservation(context.Context, string, string, string) (*model.IndustryPattern, error) {
	return nil, errStoreDown
}

func (failingStore) CountIndustryPatterns(context.Context, string) (int, error) {
	return 0, errStoreDown
}

func (failingStore) GetTenantSettings(context.Context, string) (*model.TenantSettings, error) {
	return nil, errStoreDown
}

func (failingStore) SaveTenantSettings(context.Context, *model.TenantSettings) error {
	return errStoreDown
}

func (failingStore) GetTenantCategories(context.Context, string) ([]model.TenantCategory, error) {
	return nil, errStoreDown
}

func (failingStore) SaveTenantCategory(context.Context, *model.TenantCategory) error {
	return errStoreDown
}

func (failingStore) RecordEvent(context.Context, string, map[string]any) error {
	return errStoreDown
}

func (failingStore) Migrate(context.Context) error { return errStoreDown }

func (failingStore) Close() error { return nil }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testutil.SetupTestDB(t), catalog.Default())
}

func TestClassifyKeywordFallback(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	result, err := e.Classify(ctx, "ESKOM PREPAID METER", 0, model.TenantContext{})
	require.NoError(t, err)

	assert.Equal(t, "ELECTRICITY", result.Category)
	assert.Equal(t, model.MatchKeyword, result.MatchType)
	assert.Greater(t, result.Confidence, 0.6)
	assert.LessOrEqual(t, result.Confidence, 0.92)
}

func TestClassifyNoMatch(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	result, err := e.Classify(ctx, "zzqx unmatched merchant", 100, model.TenantContext{})
	require.NoError(t, err)

	assert.Empty(t, result.Category)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, model.MatchNone, result.MatchType)
	assert.False(t, result.Matched())
}

func TestClassifyTenantRuleBeatsKeyword(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	tenant := model.TenantContext{TenantID: "7"}

	// The catalog maps "engen" to FUEL, but tenant 7 allocates these to
	// TRAVEL; the tenant exact rule must win.
	_, err := e.Learn(ctx, "engen fuel", "TRAVEL", tenant, "")
	require.NoError(t, err)
	e.Flush()

	result, err := e.Classify(ctx, "engen fuel", 500, tenant)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL", result.Category)
	assert.Equal(t, model.MatchExact, result.MatchType)

	// A looser rendering of the same merchant still resolves through the
	// tenant's learned rule, ahead of the catalog.
	result, err = e.Classify(ctx, "Engen Fuel Station", 500, tenant)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL", result.Category)
	assert.Equal(t, model.MatchLearned, result.MatchType)

	// Another tenant still gets the catalog answer.
	result, err = e.Classify(ctx, "Engen Fuel Station", 500, model.TenantContext{TenantID: "9"})
	require.NoError(t, err)
	assert.Equal(t, "FUEL", result.Category)
	assert.Equal(t, model.MatchKeyword, result.MatchType)
}

func TestClassifyGlobalExactRule(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Learn(ctx, "Mystery Vendor 55", "CONSULTING", model.TenantContext{}, "")
	require.NoError(t, err)

	result, err := e.Classify(ctx, "Mystery Vendor 55", 0, model.TenantContext{TenantID: "7"})
	require.NoError(t, err)

	assert.Equal(t, "CONSULTING", result.Category)
	assert.Equal(t, model.MatchExact, result.MatchType)
	assert.GreaterOrEqual(t, result.Confidence, 0.70)
}

func TestClassifyClientKeyword(t *testing.T) {
	store := testutil.SetupTestDB(t)
	e := New(store, catalog.Default())
	ctx := context.Background()

	err := store.SaveTenantCategory(ctx, &model.TenantCategory{
		TenantID: "7",
		Code:     "SPONSORSHIPS",
		Label:    "Club Sponsorships",
		Keywords: []string{"rondebosch cricket"},
	})
	require.NoError(t, err)

	result, err := e.Classify(ctx, "Rondebosch Cricket Club monthly", 0, model.TenantContext{TenantID: "7"})
	require.NoError(t, err)

	assert.Equal(t, "SPONSORSHIPS", result.Category)
	assert.Equal(t, "Club Sponsorships", result.CategoryLabel)
	assert.Equal(t, model.MatchClientKeyword, result.MatchType)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestClassifyFuzzyLearnedRule(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Learn(ctx, "mzansi signage supplies", "ADVERTISING", model.TenantContext{}, "")
	require.NoError(t, err)

	// Different reference suffix, same merchant tokens: no exact match,
	// fuzzy overlap 2/3 > 0.6.
	result, err := e.Classify(ctx, "mzansi signage invoice", 0, model.TenantContext{})
	require.NoError(t, err)

	assert.Equal(t, "ADVERTISING", result.Category)
	assert.Equal(t, model.MatchLearned, result.MatchType)
	assert.NotEmpty(t, result.RuleID)
	// Effective confidence is overlap * rule confidence, below the raw rule.
	assert.Less(t, result.Confidence, 0.70)
	assert.Greater(t, result.Confidence, 0.40)
}

func TestClassifyFuzzyRejectsWeakOverlap(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Learn(ctx, "mzansi signage supplies pinelands branch", "ADVERTISING", model.TenantContext{}, "")
	require.NoError(t, err)

	// One token of five overlaps: below the authoritative floor.
	result, err := e.Classify(ctx, "mzansi holdings", 0, model.TenantContext{})
	require.NoError(t, err)

	assert.NotEqual(t, model.MatchLearned, result.MatchType)
}

func TestClassifyIndustryPattern(t *testing.T) {
	store := testutil.SetupTestDB(t)
	e := New(store, catalog.Default())
	ctx := context.Background()

	_, err := store.UpsertIndustryObservation(ctx, "retail", "khumalo wholesale meats", "STAFF_REFRESHMENTS")
	require.NoError(t, err)

	// Same industry sees the aggregate.
	result, err := e.Classify(ctx, "Khumalo Wholesale Meats", 0,
		model.TenantContext{TenantID: "9", IndustryID: "retail"})
	require.NoError(t, err)
	assert.Equal(t, "STAFF_REFRESHMENTS", result.Category)
	assert.Equal(t, model.MatchIndustry, result.MatchType)
	assert.InDelta(t, 0.50, result.Confidence, 1e-9)

	// A tenant without an industry never consults the shared store.
	result, err = e.Classify(ctx, "Khumalo Wholesale Meats", 0,
		model.TenantContext{TenantID: "9"})
	require.NoError(t, err)
	assert.Equal(t, model.MatchNone, result.MatchType)
}

func TestClassifyKeywordAlternatives(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// "uber" hits TRAVEL; "restaurant" hits ENTERTAINMENT.
	result, err := e.Classify(ctx, "uber trip to restaurant", 0, model.TenantContext{})
	require.NoError(t, err)

	assert.Equal(t, model.MatchKeyword, result.MatchType)
	require.NotEmpty(t, result.Alternatives)
	assert.LessOrEqual(t, len(result.Alternatives), 3)
	for _, alt := range result.Alternatives {
		assert.NotEqual(t, result.Category, alt.Category)
		assert.LessOrEqual(t, alt.Confidence, 0.92)
	}
}

func TestClassifyAmountHeuristic(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	result, err := e.Classify(ctx, "N1 ULTRA CITY MIDRAND", 650, model.TenantContext{})
	require.NoError(t, err)
	assert.Equal(t, "FUEL", result.Category)
	assert.Equal(t, model.MatchRuleBased, result.MatchType)
	assert.InDelta(t, 0.90, result.Confidence, 1e-9)

	result, err = e.Classify(ctx, "N1 ULTRA CITY MIDRAND", 45, model.TenantContext{})
	require.NoError(t, err)
	assert.Equal(t, "STAFF_REFRESHMENTS", result.Category)
	assert.InDelta(t, 0.80, result.Confidence, 1e-9)
}

func TestClassifyEmptyDescription(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	result, err := e.Classify(ctx, "", 0, model.TenantContext{})
	require.NoError(t, err)
	assert.Equal(t, model.MatchNone, result.MatchType)
}

func TestEndToEndLearnThenExact(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// Fresh system: keyword fallback.
	result, err := e.Classify(ctx, "ESKOM PREPAID METER", 0, model.TenantContext{})
	require.NoError(t, err)
	assert.Equal(t, "ELECTRICITY", result.Category)
	assert.Equal(t, model.MatchKeyword, result.MatchType)

	// The user corrects the allocation; the learned rule takes over.
	_, err = e.Learn(ctx, "ESKOM PREPAID METER", "UTILITIES", model.TenantContext{}, "")
	require.NoError(t, err)

	result, err = e.Classify(ctx, "ESKOM PREPAID METER", 0, model.TenantContext{})
	require.NoError(t, err)
	assert.Equal(t, "UTILITIES", result.Category)
	assert.Equal(t, model.MatchExact, result.MatchType)
	assert.GreaterOrEqual(t, result.Confidence, 0.70)
}

func TestClassifyDegradesWhenStorageDown(t *testing.T) {
	e := New(failingStore{}, catalog.Default())
	ctx := context.Background()
	tenant := model.TenantContext{TenantID: "7", IndustryID: "retail"}

	// Every store-backed step misses; the in-memory catalog still answers.
	result, err := e.Classify(ctx, "ESKOM PREPAID METER", 0, tenant)
	require.NoError(t, err)
	assert.Equal(t, "ELECTRICITY", result.Category)
	assert.Equal(t, model.MatchKeyword, result.MatchType)

	// With no catalog hit either, the outcome is a clean miss, not an error.
	result, err = e.Classify(ctx, "zzqx unmatched merchant", 100, tenant)
	require.NoError(t, err)
	assert.Equal(t, model.MatchNone, result.MatchType)
	assert.False(t, result.Matched())
}
