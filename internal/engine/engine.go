// Package engine implements the transaction allocation pipeline: a strict
// priority ladder from tenant-learned rules down to amount heuristics, plus
// the learning feedback path that reinforces, decays and shares rules.
package engine

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/veldworks/veldbooks/internal/catalog"
	"github.com/veldworks/veldbooks/internal/match"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/normalize"
	"github.com/veldworks/veldbooks/internal/service"
)

// Fixed confidences for pipeline steps that do not derive one.
const (
	clientKeywordConfidence = 0.85
	heuristicLargeConf      = 0.90
	heuristicSmallConf      = 0.80
)

// Engine orchestrates classification and learning against the store. A
// classify call has no side effects of its own; stores mutate only through
// Learn.
type Engine struct {
	store          service.Storage
	catalog        *catalog.Catalog
	heuristics     []AmountHeuristic
	lookupTimeout  time.Duration
	candidateLimit int
	contributions  sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithLookupTimeout bounds each storage round-trip in the classify path so
// a slow store degrades to "no match" instead of hanging the caller.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lookupTimeout = d }
}

// WithCandidateLimit bounds how many stored rules a fuzzy pass considers.
func WithCandidateLimit(n int) Option {
	return func(e *Engine) { e.candidateLimit = n }
}

// WithHeuristics replaces the default amount-based merchant heuristics.
func WithHeuristics(heuristics []AmountHeuristic) Option {
	return func(e *Engine) { e.heuristics = heuristics }
}

// New creates an allocation engine.
func New(store service.Storage, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:          store,
		catalog:        cat,
		heuristics:     defaultHeuristics(),
		lookupTimeout:  2 * time.Second,
		candidateLimit: 200,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Flush waits for any in-flight industry contributions to settle. Call
// before shutdown and in tests that assert on contribution effects.
func (e *Engine) Flush() {
	e.contributions.Wait()
}

// Classify assigns a statement line to a category. The pipeline runs in
// strict priority order and short-circuits on the first definitive hit;
// storage failures degrade the affected step rather than propagate, since a
// suggestion is advisory.
func (e *Engine) Classify(ctx context.Context, description string, amount float64, tenant model.TenantContext) (model.ClassificationResult, error) {
	pattern := normalize.Normalize(description)

	// 1. Tenant-specific exact rule.
	if tenant.Scoped() && pattern != "" {
		if rule := e.lookupRule(ctx, pattern, tenant.Scope()); rule != nil {
			return e.ruleResult(rule, model.MatchExact, rule.Confidence), nil
		}
	}

	// 2. Tenant-private category keywords.
	if tenant.Scoped() {
		if result, ok := e.classifyClientKeywords(ctx, description, tenant); ok {
			return result, nil
		}
	}

	// 3. Global exact rule.
	if pattern != "" {
		if rule := e.lookupRule(ctx, pattern, model.ScopeGlobal); rule != nil {
			return e.ruleResult(rule, model.MatchExact, rule.Confidence), nil
		}
	}

	// 4. Fuzzy match across visible rules.
	if result, ok := e.classifyFuzzy(ctx, description, tenant); ok {
		return result, nil
	}

	// 5. Industry patterns, exact then fuzzy.
	if tenant.IndustryID != "" {
		if result, ok := e.classifyIndustry(ctx, description, pattern, tenant.IndustryID); ok {
			return result, nil
		}
	}

	// 6. Shared keyword catalog, with ranked alternatives.
	if result, ok := e.classifyKeywords(description); ok {
		return result, nil
	}

	// 7. Amount heuristics for ambiguous forecourt merchants.
	if result, ok := e.classifyAmount(description, amount); ok {
		return result, nil
	}

	// 8. No match.
	return model.ClassificationResult{MatchType: model.MatchNone}, nil
}

func (e *Engine) ruleResult(rule *model.LearnedRule, matchType model.MatchType, confidence float64) model.ClassificationResult {
	if confidence > model.RuleConfidenceCeiling {
		confidence = model.RuleConfidenceCeiling
	}
	return model.ClassificationResult{
		Category:      rule.Category,
		CategoryLabel: e.catalog.Label(rule.Category),
		Confidence:    confidence,
		MatchType:     matchType,
		RuleID:        rule.ID,
	}
}

// lookupRule performs a bounded exact-rule lookup, degrading to a miss on
// storage failure.
func (e *Engine) lookupRule(ctx context.Context, pattern, scope string) *model.LearnedRule {
	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	rule, err := e.store.GetRule(lookupCtx, pattern, scope)
	if err != nil {
		slog.Warn("rule lookup degraded to miss", "scope", scope, "error", err)
		return nil
	}
	return rule
}

func (e *Engine) classifyClientKeywords(ctx context.Context, description string, tenant model.TenantContext) (model.ClassificationResult, bool) {
	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	categories, err := e.store.GetTenantCategories(lookupCtx, tenant.TenantID)
	if err != nil {
		slog.Warn("tenant category lookup degraded to miss", "tenant_id", tenant.TenantID, "error", err)
		return model.ClassificationResult{}, false
	}

	lower := strings.ToLower(description)
	bestScore := 0
	var best *model.TenantCategory
	for i, cat := range categories {
		score := 0
		for _, phrase := range cat.Keywords {
			if phrase != "" && strings.Contains(lower, phrase) {
				score += len(phrase)
			}
		}
		if score > bestScore {
			bestScore = score
			best = &categories[i]
		}
	}
	if best == nil {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		Category:      best.Code,
		CategoryLabel: best.Label,
		Confidence:    clientKeywordConfidence,
		MatchType:     model.MatchClientKeyword,
	}, true
}

func (e *Engine) classifyFuzzy(ctx context.Context, description string, tenant model.TenantContext) (model.ClassificationResult, bool) {
	queryTokens := normalize.ExtractKeywords(description)
	if len(queryTokens) == 0 {
		return model.ClassificationResult{}, false
	}

	scopes := []string{model.ScopeGlobal}
	if tenant.Scoped() {
		scopes = append(scopes, tenant.Scope())
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	rules, err := e.store.FindRules(lookupCtx, service.RuleFilter{Scopes: scopes, Limit: e.candidateLimit})
	if err != nil {
		slog.Warn("fuzzy rule scan degraded to miss", "error", err)
		return model.ClassificationResult{}, false
	}

	bestScore := 0.0
	var best *model.LearnedRule
	for i, rule := range rules {
		score := match.Overlap(queryTokens, normalize.ExtractKeywords(rule.RawPattern))
		if score <= match.CandidateFloor {
			continue
		}
		if score > bestScore || (score == bestScore && best != nil && rule.ObservationCount > best.ObservationCount) {
			bestScore = score
			best = &rules[i]
		}
	}

	// Only an emphatic best candidate is authoritative.
	if best == nil || bestScore <= match.AuthoritativeFloor {
		return model.ClassificationResult{}, false
	}

	return e.ruleResult(best, model.MatchLearned, bestScore*best.Confidence), true
}

func (e *Engine) classifyIndustry(ctx context.Context, description, pattern, industryID string) (model.ClassificationResult, bool) {
	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	if pattern != "" {
		exact, err := e.store.GetIndustryPattern(lookupCtx, industryID, pattern)
		if err != nil {
			slog.Warn("industry lookup degraded to miss", "industry_id", industryID, "error", err)
			return model.ClassificationResult{}, false
		}
		if exact != nil && exact.Confidence >= model.IndustryInitialConfidence {
			return model.ClassificationResult{
				Category:      exact.SuggestedCategory,
				CategoryLabel: e.catalog.Label(exact.SuggestedCategory),
				Confidence:    exact.Confidence,
				MatchType:     model.MatchIndustry,
			}, true
		}
	}

	queryTokens := normalize.ExtractKeywords(description)
	if len(queryTokens) == 0 {
		return model.ClassificationResult{}, false
	}

	patterns, err := e.store.FindIndustryPatterns(lookupCtx, industryID, e.candidateLimit)
	if err != nil {
		slog.Warn("industry scan degraded to miss", "industry_id", industryID, "error", err)
		return model.ClassificationResult{}, false
	}

	bestScore := 0.0
	var best *model.IndustryPattern
	for i, candidate := range patterns {
		if candidate.Confidence < model.IndustryInitialConfidence {
			continue
		}
		score := match.Overlap(queryTokens, normalize.ExtractKeywords(candidate.NormalizedPattern))
		if score <= match.CandidateFloor {
			continue
		}
		if score > bestScore || (score == bestScore && best != nil && candidate.OccurrenceCount > best.OccurrenceCount) {
			bestScore = score
			best = &patterns[i]
		}
	}
	if best == nil || bestScore <= match.AuthoritativeFloor {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		Category:      best.SuggestedCategory,
		CategoryLabel: e.catalog.Label(best.SuggestedCategory),
		Confidence:    bestScore * best.Confidence,
		MatchType:     model.MatchIndustry,
	}, true
}

func (e *Engine) classifyKeywords(description string) (model.ClassificationResult, bool) {
	scores := e.catalog.ScoreCategories(description)
	if len(scores) == 0 {
		return model.ClassificationResult{}, false
	}

	top := scores[0]
	result := model.ClassificationResult{
		Category:      top.Category.Code,
		CategoryLabel: top.Category.Label,
		Confidence:    catalog.Confidence(top.MatchCount),
		MatchType:     model.MatchKeyword,
	}

	for _, alt := range scores[1:] {
		if len(result.Alternatives) >= catalog.MaxAlternatives {
			break
		}
		result.Alternatives = append(result.Alternatives, model.Alternative{
			Category:   alt.Category.Code,
			Label:      alt.Category.Label,
			Confidence: catalog.Confidence(alt.MatchCount),
		})
	}

	return result, true
}

func (e *Engine) classifyAmount(description string, amount float64) (model.ClassificationResult, bool) {
	lower := strings.ToLower(description)
	magnitude := math.Abs(amount)

	for _, h := range e.heuristics {
		if !h.matches(lower) {
			continue
		}
		code, confidence := h.SmallCategory, heuristicSmallConf
		if magnitude >= h.Threshold {
			code, confidence = h.LargeCategory, heuristicLargeConf
		}
		return model.ClassificationResult{
			Category:      code,
			CategoryLabel: e.catalog.Label(code),
			Confidence:    confidence,
			MatchType:     model.MatchRuleBased,
		}, true
	}

	return model.ClassificationResult{}, false
}
