package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/veldworks/veldbooks/internal/model"
)

// GetTenantSettings retrieves a tenant's industry assignment and privacy
// level, or nil when the tenant is unknown.
func (s *SQLiteStorage) GetTenantSettings(ctx context.Context, tenantID string) (*model.TenantSettings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(tenantID, "tenantID"); err != nil {
		return nil, err
	}

	var settings model.TenantSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT tenant_id, industry_id, privacy_level
		FROM tenant_settings WHERE tenant_id = ?
	`, tenantID).Scan(&settings.TenantID, &settings.IndustryID, &settings.PrivacyLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get tenant settings", err)
	}
	return &settings, nil
}

// SaveTenantSettings creates or replaces a tenant's settings.
func (s *SQLiteStorage) SaveTenantSettings(ctx context.Context, settings *model.TenantSettings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTenantSettings(settings); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenant_settings (tenant_id, industry_id, privacy_level)
		VALUES (?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			industry_id = excluded.industry_id,
			privacy_level = excluded.privacy_level
	`, settings.TenantID, settings.IndustryID, settings.PrivacyLevel)
	if err != nil {
		return storageError("save tenant settings", err)
	}
	return nil
}

// GetTenantCategories returns a tenant's private categories.
func (s *SQLiteStorage) GetTenantCategories(ctx context.Context, tenantID string) ([]model.TenantCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(tenantID, "tenantID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tenant_id, code, label, keywords
		FROM tenant_categories WHERE tenant_id = ?
		ORDER BY code
	`, tenantID)
	if err != nil {
		return nil, storageError("get tenant categories", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.TenantCategory
	for rows.Next() {
		var cat model.TenantCategory
		var keywords string
		if err := rows.Scan(&cat.TenantID, &cat.Code, &cat.Label, &keywords); err != nil {
			return nil, storageError("scan tenant category", err)
		}
		if err := json.Unmarshal([]byte(keywords), &cat.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for %s/%s: %w", cat.TenantID, cat.Code, err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate tenant categories", err)
	}

	return categories, nil
}

// SaveTenantCategory creates or replaces one tenant-private category.
func (s *SQLiteStorage) SaveTenantCategory(ctx context.Context, category *model.TenantCategory) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.TenantID, "category.TenantID"); err != nil {
		return err
	}
	if err := validateString(category.Code, "category.Code"); err != nil {
		return err
	}

	keywords, err := json.Marshal(category.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tenant_categories (tenant_id, code, label, keywords)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tenant_id, code) DO UPDATE SET
			label = excluded.label,
			keywords = excluded.keywords
	`, category.TenantID, category.Code, category.Label, string(keywords))
	if err != nil {
		return storageError("save tenant category", err)
	}
	return nil
}
