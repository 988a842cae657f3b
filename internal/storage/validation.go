package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veldworks/veldbooks/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRule   = errors.New("invalid learned rule")
	ErrInvalidTenant = errors.New("invalid tenant settings")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRule validates a learned rule before it is written.
func validateRule(rule *model.LearnedRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if rule.NormalizedPattern == "" {
		return fmt.Errorf("%w: missing normalized pattern", ErrInvalidRule)
	}
	if rule.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRule)
	}
	if rule.Scope == "" {
		return fmt.Errorf("%w: missing scope", ErrInvalidRule)
	}
	if rule.Confidence < model.RuleConfidenceFloor || rule.Confidence > model.RuleConfidenceCeiling {
		return fmt.Errorf("%w: confidence %.2f out of range", ErrInvalidRule, rule.Confidence)
	}
	return nil
}

// validateTenantSettings validates tenant settings before they are written.
func validateTenantSettings(settings *model.TenantSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if settings.TenantID == "" {
		return fmt.Errorf("%w: missing tenant ID", ErrInvalidTenant)
	}
	switch settings.PrivacyLevel {
	case model.PrivacyStrict, model.PrivacyIndustryLearning:
		return nil
	default:
		return fmt.Errorf("%w: unknown privacy level %q", ErrInvalidTenant, settings.PrivacyLevel)
	}
}
