package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/planagil/dailies/internal/services/dailies/storage"
)

// CreateImpediment persists one impediment row.
func (s *Store) CreateImpediment(ctx context.Context, record storage.ImpedimentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeImpedimentRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO impediments (id, sprint_id, meeting_id, description, priority, state, reporter_id, resolver_id, reported_at, due_date, resolution, resolved_at, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		normalized.ID,
		normalized.SprintID,
		normalized.MeetingID,
		normalized.Description,
		normalized.Priority,
		normalized.State,
		normalized.ReporterID,
		normalized.ResolverID,
		toMillis(normalized.ReportedAt),
		toNullMillis(normalized.DueDate),
		normalized.Resolution,
		toNullMillis(normalized.ResolvedAt),
		normalized.Version,
		toMillis(normalized.CreatedAt),
		toMillis(normalized.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("insert impediment: %w", err)
	}
	return nil
}

// GetImpediment loads one impediment by id.
func (s *Store) GetImpediment(ctx context.Context, impedimentID string) (storage.ImpedimentRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ImpedimentRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ImpedimentRecord{}, fmt.Errorf("storage is not configured")
	}
	impedimentID = strings.TrimSpace(impedimentID)
	if impedimentID == "" {
		return storage.ImpedimentRecord{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, impedimentSelect+" WHERE id = ?", impedimentID)
	record, err := scanImpediment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ImpedimentRecord{}, storage.ErrNotFound
		}
		return storage.ImpedimentRecord{}, fmt.Errorf("get impediment: %w", err)
	}
	return record, nil
}

// UpdateImpediment replaces one impediment row when the stored version
// matches. A version mismatch returns ErrConflict.
func (s *Store) UpdateImpediment(ctx context.Context, record storage.ImpedimentRecord) (storage.ImpedimentRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ImpedimentRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ImpedimentRecord{}, fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeImpedimentRecord(record)
	if err != nil {
		return storage.ImpedimentRecord{}, err
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE impediments
SET description = ?, priority = ?, state = ?, resolver_id = ?, due_date = ?, resolution = ?, resolved_at = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?
`,
		normalized.Description,
		normalized.Priority,
		normalized.State,
		normalized.ResolverID,
		toNullMillis(normalized.DueDate),
		normalized.Resolution,
		toNullMillis(normalized.ResolvedAt),
		toMillis(normalized.UpdatedAt),
		normalized.ID,
		normalized.Version,
	)
	if err != nil {
		return storage.ImpedimentRecord{}, fmt.Errorf("update impediment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.ImpedimentRecord{}, fmt.Errorf("update impediment rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		scanErr := s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM impediments WHERE id = ?", normalized.ID).Scan(&exists)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return storage.ImpedimentRecord{}, storage.ErrNotFound
		}
		if scanErr != nil {
			return storage.ImpedimentRecord{}, fmt.Errorf("check impediment existence: %w", scanErr)
		}
		return storage.ImpedimentRecord{}, storage.ErrConflict
	}
	return s.GetImpediment(ctx, normalized.ID)
}

// ListImpedimentsBySprint lists one sprint's impediments oldest first. The
// filter accepts an AIP-160 expression over state, priority, reporter_id,
// and meeting_id.
func (s *Store) ListImpedimentsBySprint(ctx context.Context, sprintID string, filter string) ([]storage.ImpedimentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sprintID = strings.TrimSpace(sprintID)
	if sprintID == "" {
		return nil, fmt.Errorf("sprint id is required")
	}

	where, args, err := impedimentFilterSQL(filter)
	if err != nil {
		return nil, err
	}
	query := impedimentSelect + " WHERE sprint_id = ?"
	queryArgs := append([]any{sprintID}, args...)
	if where != "" {
		query += " AND " + where
	}
	query += " ORDER BY reported_at ASC, id ASC"
	return s.listImpediments(ctx, query, queryArgs...)
}

// ListImpedimentsByState lists impediments in one lifecycle state across
// sprints, oldest first.
func (s *Store) ListImpedimentsByState(ctx context.Context, state string) ([]storage.ImpedimentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	state = strings.TrimSpace(state)
	if state == "" {
		return nil, fmt.Errorf("impediment state is required")
	}
	return s.listImpediments(ctx, impedimentSelect+" WHERE state = ? ORDER BY reported_at ASC, id ASC", state)
}

// ListImpedimentsByMeeting lists the impediments raised in one meeting.
func (s *Store) ListImpedimentsByMeeting(ctx context.Context, meetingID string) ([]storage.ImpedimentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return nil, fmt.Errorf("meeting id is required")
	}
	return s.listImpediments(ctx, impedimentSelect+" WHERE meeting_id = ? ORDER BY reported_at ASC, id ASC", meetingID)
}

// DeleteImpediment deletes one impediment row.
func (s *Store) DeleteImpediment(ctx context.Context, impedimentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	impedimentID = strings.TrimSpace(impedimentID)
	if impedimentID == "" {
		return storage.ErrNotFound
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM impediments WHERE id = ?", impedimentID)
	if err != nil {
		return fmt.Errorf("delete impediment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete impediment rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const impedimentSelect = `
SELECT id, sprint_id, meeting_id, description, priority, state, reporter_id, resolver_id, reported_at, due_date, resolution, resolved_at, version, created_at, updated_at
FROM impediments`

func (s *Store) listImpediments(ctx context.Context, query string, args ...any) ([]storage.ImpedimentRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list impediments: %w", err)
	}
	defer rows.Close()

	var records []storage.ImpedimentRecord
	for rows.Next() {
		record, scanErr := scanImpediment(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan impediment row: %w", scanErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate impediment rows: %w", err)
	}
	return records, nil
}

func scanImpediment(scan scanner) (storage.ImpedimentRecord, error) {
	var record storage.ImpedimentRecord
	var reportedAt int64
	var dueDate sql.NullInt64
	var resolvedAt sql.NullInt64
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&record.ID,
		&record.SprintID,
		&record.MeetingID,
		&record.Description,
		&record.Priority,
		&record.State,
		&record.ReporterID,
		&record.ResolverID,
		&reportedAt,
		&dueDate,
		&record.Resolution,
		&resolvedAt,
		&record.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.ImpedimentRecord{}, err
	}
	record.ReportedAt = fromMillis(reportedAt)
	record.DueDate = fromNullMillis(dueDate)
	record.ResolvedAt = fromNullMillis(resolvedAt)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func normalizeImpedimentRecord(record storage.ImpedimentRecord) (storage.ImpedimentRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.SprintID = strings.TrimSpace(record.SprintID)
	record.MeetingID = strings.TrimSpace(record.MeetingID)
	record.Priority = strings.TrimSpace(record.Priority)
	record.State = strings.TrimSpace(record.State)
	record.ReporterID = strings.TrimSpace(record.ReporterID)
	record.ResolverID = strings.TrimSpace(record.ResolverID)
	if record.ID == "" {
		return storage.ImpedimentRecord{}, fmt.Errorf("impediment id is required")
	}
	if record.SprintID == "" {
		return storage.ImpedimentRecord{}, fmt.Errorf("sprint id is required")
	}
	if record.Description == "" {
		return storage.ImpedimentRecord{}, fmt.Errorf("impediment description is required")
	}
	if record.Priority == "" {
		return storage.ImpedimentRecord{}, fmt.Errorf("impediment priority is required")
	}
	if record.State == "" {
		return storage.ImpedimentRecord{}, fmt.Errorf("impediment state is required")
	}
	if record.ReportedAt.IsZero() {
		return storage.ImpedimentRecord{}, fmt.Errorf("reported_at is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.ImpedimentRecord{}, fmt.Errorf("created_at is required")
	}
	if record.UpdatedAt.IsZero() {
		return storage.ImpedimentRecord{}, fmt.Errorf("updated_at is required")
	}
	record.ReportedAt = record.ReportedAt.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	if record.DueDate != nil {
		dueDate := record.DueDate.UTC()
		record.DueDate = &dueDate
	}
	if record.ResolvedAt != nil {
		resolvedAt := record.ResolvedAt.UTC()
		record.ResolvedAt = &resolvedAt
	}
	return record, nil
}
