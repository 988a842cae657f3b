package model

// PrivacyLevel gates whether a tenant's anonymized patterns may be
// aggregated industry-wide.
type PrivacyLevel string

const (
	// PrivacyStrict means no observation ever leaves tenant scope.
	PrivacyStrict PrivacyLevel = "STRICT"
	// PrivacyIndustryLearning permits anonymized industry aggregation.
	PrivacyIndustryLearning PrivacyLevel = "INDUSTRY_LEARNING"
)

// TenantContext carries the caller's tenant identity into classify and
// learn calls. A zero TenantContext means a global, unscoped caller.
type TenantContext struct {
	TenantID     string
	IndustryID   string
	PrivacyLevel PrivacyLevel
}

// Scoped reports whether the context identifies a tenant.
func (t TenantContext) Scoped() bool {
	return t.TenantID != ""
}

// Scope returns the rule scope for this context.
func (t TenantContext) Scope() string {
	if !t.Scoped() {
		return ScopeGlobal
	}
	return TenantScope(t.TenantID)
}

// TenantSettings is the persisted counterpart of TenantContext, letting the
// CLI resolve a tenant's industry and privacy level without the suite.
type TenantSettings struct {
	TenantID     string
	IndustryID   string
	PrivacyLevel PrivacyLevel
}
