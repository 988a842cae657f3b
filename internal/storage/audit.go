package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veldworks/veldbooks/internal/model"
)

// RecordEvent appends one entry to the audit trail.
func (s *SQLiteStorage) RecordEvent(ctx context.Context, kind string, payload map[string]any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(kind, "kind"); err != nil {
		return err
	}

	encoded := []byte("{}")
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode audit payload: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO audit_events (kind, payload) VALUES (?, ?)",
		kind, string(encoded))
	if err != nil {
		return storageError("record audit event", err)
	}
	return nil
}

// ListEvents returns the newest audit entries of a kind.
func (s *SQLiteStorage) ListEvents(ctx context.Context, kind string, limit int) ([]model.AuditEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(kind, "kind"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, payload, created_at
		FROM audit_events WHERE kind = ?
		ORDER BY id DESC LIMIT ?
	`, kind, limit)
	if err != nil {
		return nil, storageError("list audit events", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.AuditEvent
	for rows.Next() {
		var event model.AuditEvent
		var payload string
		if err := rows.Scan(&event.ID, &event.Kind, &payload, &event.CreatedAt); err != nil {
			return nil, storageError("scan audit event", err)
		}
		if err := json.Unmarshal([]byte(payload), &event.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload for event %d: %w", event.ID, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate audit events", err)
	}

	return events, nil
}

// CountEvents returns the number of audit entries of a kind. Used by
// inspection tooling and tests.
func (s *SQLiteStorage) CountEvents(ctx context.Context, kind string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(kind, "kind"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audit_events WHERE kind = ?", kind).Scan(&count)
	if err != nil {
		return 0, storageError("count audit events", err)
	}
	return count, nil
}
