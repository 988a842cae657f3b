package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/service"
)

const ruleColumns = `id, raw_pattern, normalized_pattern, category, confidence, observation_count, scope, created_at, updated_at`

// GetRule retrieves the strongest rule for an exact (normalized pattern,
// scope) key, or nil when none exists. When contradictory rules coexist for
// the key, the one with the highest confidence wins, then the most
// reinforced.
func (s *SQLiteStorage) GetRule(ctx context.Context, normalizedPattern, scope string) (*model.LearnedRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalizedPattern, "normalizedPattern"); err != nil {
		return nil, err
	}
	if err := validateString(scope, "scope"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM learned_rules
		WHERE normalized_pattern = ? AND scope = ?
		ORDER BY confidence DESC, observation_count DESC, updated_at DESC
		LIMIT 1
	`, ruleColumns)

	rule, err := scanRule(s.db.QueryRowContext(ctx, query, normalizedPattern, scope))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get rule", err)
	}
	return rule, nil
}

// FindRules returns rules matching the filter, most reinforced first.
func (s *SQLiteStorage) FindRules(ctx context.Context, filter service.RuleFilter) ([]model.LearnedRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if len(filter.Scopes) > 0 {
		placeholders := strings.Repeat("?, ", len(filter.Scopes))
		conditions = append(conditions, fmt.Sprintf("scope IN (%s)", strings.TrimSuffix(placeholders, ", ")))
		for _, scope := range filter.Scopes {
			args = append(args, scope)
		}
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	query := fmt.Sprintf(`SELECT %s FROM learned_rules`, ruleColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY observation_count DESC, updated_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("find rules", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.LearnedRule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, storageError("scan rule", scanErr)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate rules", err)
	}

	return rules, nil
}

// UpsertRuleObservation creates the rule or, when the (pattern, scope,
// category) key already exists, atomically increments its observation count
// and confidence. The whole operation is a single statement so concurrent
// observers of the same key never lose an increment.
func (s *SQLiteStorage) UpsertRuleObservation(ctx context.Context, rule *model.LearnedRule) (*model.LearnedRule, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateRule(rule); err != nil {
		return nil, false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO learned_rules (id, raw_pattern, normalized_pattern, category, confidence, observation_count, scope)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(normalized_pattern, scope, category) DO UPDATE SET
			observation_count = observation_count + 1,
			confidence = MIN(confidence + ?, ?),
			updated_at = CURRENT_TIMESTAMP
		RETURNING %s
	`, ruleColumns)

	stored, err := scanRule(s.db.QueryRowContext(ctx, query,
		rule.ID, rule.RawPattern, rule.NormalizedPattern, rule.Category,
		rule.Confidence, rule.Scope,
		model.RuleAgreementStep, model.RuleConfidenceCeiling,
	))
	if err != nil {
		return nil, false, storageError("upsert rule observation", err)
	}

	// The conflict path always lands at a count of at least 2.
	isNew := stored.ObservationCount == 1

	return stored, isNew, nil
}

// DecayConflictingRules lowers the confidence of every rule sharing the
// (pattern, scope) key but holding a different category. The decay is a
// soft penalty with a floor, never a delete, so a rarely-wrong rule is not
// destroyed by a single outlier correction.
func (s *SQLiteStorage) DecayConflictingRules(ctx context.Context, normalizedPattern, scope, keepCategory string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(normalizedPattern, "normalizedPattern"); err != nil {
		return 0, err
	}
	if err := validateString(scope, "scope"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE learned_rules
		SET confidence = MAX(confidence - ?, ?), updated_at = CURRENT_TIMESTAMP
		WHERE normalized_pattern = ? AND scope = ? AND category != ?
	`, model.RuleConflictDecay, model.RuleConfidenceFloor, normalizedPattern, scope, keepCategory)
	if err != nil {
		return 0, storageError("decay conflicting rules", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("count decayed rules", err)
	}
	return int(affected), nil
}

// scanner abstracts over *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRule(row scanner) (*model.LearnedRule, error) {
	var rule model.LearnedRule
	err := row.Scan(
		&rule.ID, &rule.RawPattern, &rule.NormalizedPattern, &rule.Category,
		&rule.Confidence, &rule.ObservationCount, &rule.Scope,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
