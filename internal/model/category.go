// Package model defines the core domain models for the allocation engine.
package model

// Category represents one of the fixed accounting allocation categories.
// Categories are loaded once at startup and never mutated at runtime.
type Category struct {
	Code     string   `yaml:"code"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// CategoryScore pairs a category with a relative keyword-match score.
// The score unit is the summed character length of matched phrases, so a
// longer, more specific phrase always outranks a short generic one.
type CategoryScore struct {
	Category   Category
	Score      int
	MatchCount int
}

// TenantCategory is a private category defined by a single tenant, matched
// ahead of the shared catalog during classification.
type TenantCategory struct {
	TenantID string
	Code     string
	Label    string
	Keywords []string
}
