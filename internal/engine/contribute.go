package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/veldworks/veldbooks/internal/anonymize"
	"github.com/veldworks/veldbooks/internal/common"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/normalize"
	"github.com/veldworks/veldbooks/internal/service"
)

// minContributionPattern rejects anonymized patterns too generic to be
// useful or safe.
const minContributionPattern = 3

// CanContribute reports whether a tenant's privacy level permits anonymized
// industry aggregation. It must be checked before every contribution
// attempt.
func CanContribute(tenant model.TenantContext) bool {
	return tenant.PrivacyLevel == model.PrivacyIndustryLearning
}

// contribute anonymizes a learned observation and aggregates it into the
// tenant's industry. Skips are normal outcomes, logged at debug; storage
// failure is retried once and then dropped with a warning. Nothing here may
// surface to the learn caller.
func (e *Engine) contribute(ctx context.Context, description, category string, tenant model.TenantContext) {
	if !CanContribute(tenant) {
		common.LogDebug("industry contribution skipped: privacy level", common.Fields{
			"tenant_id": tenant.TenantID, "privacy_level": tenant.PrivacyLevel,
		})
		return
	}
	if tenant.IndustryID == "" {
		common.LogDebug("industry contribution skipped: no industry assigned", common.Fields{
			"tenant_id": tenant.TenantID,
		})
		return
	}

	// Anonymize first, then re-normalize; raw text never reaches the
	// industry store.
	pattern := normalize.Normalize(anonymize.Anonymize(description))
	if len(pattern) < minContributionPattern {
		common.LogDebug("industry contribution skipped: pattern too short", common.Fields{
			"industry_id": tenant.IndustryID, "pattern": pattern,
		})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := common.WithRetry(ctx, func() error {
		_, upsertErr := e.store.UpsertIndustryObservation(ctx, tenant.IndustryID, pattern, category)
		return upsertErr
	}, service.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: 50 * time.Millisecond,
	})

	payload := map[string]any{
		"industry_id": tenant.IndustryID,
		"pattern":     pattern,
		"category":    category,
		"succeeded":   err == nil,
	}
	if auditErr := e.store.RecordEvent(ctx, model.EventIndustryContribution, payload); auditErr != nil {
		common.LogError(auditErr, "failed to record contribution audit event", nil)
	}

	if err != nil {
		slog.Warn("industry contribution dropped",
			"industry_id", tenant.IndustryID, "category", category, "error", err)
		return
	}

	common.LogDebug("industry contribution aggregated", common.Fields{
		"industry_id": tenant.IndustryID, "pattern": pattern, "category": category,
	})
}
