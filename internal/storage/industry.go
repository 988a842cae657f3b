package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veldworks/veldbooks/internal/model"
)

const industryColumns = `industry_id, normalized_pattern, suggested_category, confidence, occurrence_count, updated_at`

// GetIndustryPattern retrieves one industry aggregate by its key, or nil
// when none exists.
func (s *SQLiteStorage) GetIndustryPattern(ctx context.Context, industryID, normalizedPattern string) (*model.IndustryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(industryID, "industryID"); err != nil {
		return nil, err
	}
	if err := validateString(normalizedPattern, "normalizedPattern"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM industry_patterns
		WHERE industry_id = ? AND normalized_pattern = ?
	`, industryColumns)

	pattern, err := scanIndustryPattern(s.db.QueryRowContext(ctx, query, industryID, normalizedPattern))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get industry pattern", err)
	}
	return pattern, nil
}

// FindIndustryPatterns returns aggregates for an industry, most observed
// first.
func (s *SQLiteStorage) FindIndustryPatterns(ctx context.Context, industryID string, limit int) ([]model.IndustryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(industryID, "industryID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}

	query := fmt.Sprintf(`
		SELECT %s FROM industry_patterns
		WHERE industry_id = ?
		ORDER BY occurrence_count DESC, updated_at DESC
		LIMIT ?
	`, industryColumns)

	rows, err := s.db.QueryContext(ctx, query, industryID, limit)
	if err != nil {
		return nil, storageError("find industry patterns", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.IndustryPattern
	for rows.Next() {
		pattern, scanErr := scanIndustryPattern(rows)
		if scanErr != nil {
			return nil, storageError("scan industry pattern", scanErr)
		}
		patterns = append(patterns, *pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate industry patterns", err)
	}

	return patterns, nil
}

// UpsertIndustryObservation creates or reinforces an anonymized industry
// aggregate as a single atomic statement. The table holds no tenant
// attribution; only the occurrence count grows.
func (s *SQLiteStorage) UpsertIndustryObservation(ctx context.Context, industryID, normalizedPattern, category string) (*model.IndustryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(industryID, "industryID"); err != nil {
		return nil, err
	}
	if err := validateString(normalizedPattern, "normalizedPattern"); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO industry_patterns (industry_id, normalized_pattern, suggested_category, confidence, occurrence_count)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(industry_id, normalized_pattern) DO UPDATE SET
			occurrence_count = occurrence_count + 1,
			confidence = MIN(confidence + ?, ?),
			updated_at = CURRENT_TIMESTAMP
		RETURNING %s
	`, industryColumns)

	pattern, err := scanIndustryPattern(s.db.QueryRowContext(ctx, query,
		industryID, normalizedPattern, category,
		model.IndustryInitialConfidence,
		model.IndustryStep, model.IndustryConfidenceCeiling,
	))
	if err != nil {
		return nil, storageError("upsert industry observation", err)
	}
	return pattern, nil
}

// CountIndustryPatterns returns the number of aggregates stored for an
// industry.
func (s *SQLiteStorage) CountIndustryPatterns(ctx context.Context, industryID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(industryID, "industryID"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM industry_patterns WHERE industry_id = ?",
		industryID).Scan(&count)
	if err != nil {
		return 0, storageError("count industry patterns", err)
	}
	return count, nil
}

func scanIndustryPattern(row scanner) (*model.IndustryPattern, error) {
	var pattern model.IndustryPattern
	err := row.Scan(
		&pattern.IndustryID, &pattern.NormalizedPattern, &pattern.SuggestedCategory,
		&pattern.Confidence, &pattern.OccurrenceCount, &pattern.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}
