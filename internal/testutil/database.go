// Package testutil provides test fixtures for the allocation engine.
package testutil

import (
	"context"
	"testing"

	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store with cleanup
// registered on the test.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedTenant stores tenant settings, failing the test on error.
func SeedTenant(t *testing.T, store *storage.SQLiteStorage, tenantID, industryID string, privacy model.PrivacyLevel) {
	t.Helper()

	err := store.SaveTenantSettings(context.Background(), &model.TenantSettings{
		TenantID:     tenantID,
		IndustryID:   industryID,
		PrivacyLevel: privacy,
	})
	if err != nil {
		t.Fatalf("failed to seed tenant %s: %v", tenantID, err)
	}
}
