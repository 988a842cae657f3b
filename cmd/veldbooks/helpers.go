// Package main contains the veldbooks CLI commands.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veldworks/veldbooks/internal/catalog"
	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/storage"
)

// expandPath resolves a leading tilde and environment variables in a
// configured path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// databasePath returns the configured database path, defaulting to the
// standard per-user location.
func databasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/veldbooks/veldbooks.db"
	}
	return expandPath(dbPath)
}

// initStorage opens the configured database and brings its schema current.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadCatalog returns the built-in catalog, or one loaded from the
// configured YAML file when set.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(expandPath(path))
}

// tenantFlags registers the tenant identity flags shared by classify, learn
// and batch.
func tenantFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tenant", "t", "", "tenant identifier (empty = global scope)")
	cmd.Flags().String("industry", "", "industry identifier (default: the tenant's stored setting)")
	cmd.Flags().String("privacy", "", "privacy level: STRICT or INDUSTRY_LEARNING (default: the tenant's stored setting)")
}

// resolveTenant builds a TenantContext from the command's flags, filling
// industry and privacy from stored tenant settings when not given
// explicitly. An unknown tenant defaults to STRICT with no industry.
func resolveTenant(ctx context.Context, cmd *cobra.Command, store *storage.SQLiteStorage) (model.TenantContext, error) {
	tenantID, _ := cmd.Flags().GetString("tenant")
	industryID, _ := cmd.Flags().GetString("industry")
	privacy, _ := cmd.Flags().GetString("privacy")

	tenant := model.TenantContext{TenantID: tenantID}
	if tenantID == "" {
		return tenant, nil
	}

	if industryID == "" || privacy == "" {
		settings, err := store.GetTenantSettings(ctx, tenantID)
		if err != nil {
			return model.TenantContext{}, fmt.Errorf("failed to load tenant settings: %w", err)
		}
		if settings != nil {
			if industryID == "" {
				industryID = settings.IndustryID
			}
			if privacy == "" {
				privacy = string(settings.PrivacyLevel)
			}
		}
	}

	tenant.IndustryID = industryID
	switch privacy {
	case "", string(model.PrivacyStrict):
		tenant.PrivacyLevel = model.PrivacyStrict
	case string(model.PrivacyIndustryLearning):
		tenant.PrivacyLevel = model.PrivacyIndustryLearning
	default:
		return model.TenantContext{}, fmt.Errorf("invalid privacy level %q (want STRICT or INDUSTRY_LEARNING)", privacy)
	}

	return tenant, nil
}
