package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/planagil/dailies/internal/services/dailies/storage"
)

// CreateMeeting persists one meeting row with its response sheet.
func (s *Store) CreateMeeting(ctx context.Context, record storage.MeetingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeMeetingRecord(record)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin meeting write: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback meeting write: %v", cause, rollbackErr)
		}
		return cause
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO meetings (id, sprint_id, meeting_date, started_at, ended_at, planned_minutes, actual_minutes, notes, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		normalized.ID,
		normalized.SprintID,
		toMillis(normalized.MeetingDate),
		toNullMillis(normalized.StartedAt),
		toNullMillis(normalized.EndedAt),
		normalized.PlannedMinutes,
		normalized.ActualMinutes,
		normalized.Notes,
		normalized.Version,
		toMillis(normalized.CreatedAt),
		toMillis(normalized.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return rollbackWith(storage.ErrConflict)
		}
		return rollbackWith(fmt.Errorf("insert meeting: %w", err))
	}

	if err := insertResponsesExec(ctx, tx, normalized.ID, normalized.Responses); err != nil {
		return rollbackWith(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit meeting write: %w", err)
	}
	return nil
}

// GetMeeting loads one meeting with its responses in sheet order.
func (s *Store) GetMeeting(ctx context.Context, meetingID string) (storage.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.MeetingRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MeetingRecord{}, fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return storage.MeetingRecord{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, sprint_id, meeting_date, started_at, ended_at, planned_minutes, actual_minutes, notes, version, created_at, updated_at
FROM meetings
WHERE id = ?
`, meetingID)
	record, err := scanMeeting(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MeetingRecord{}, storage.ErrNotFound
		}
		return storage.MeetingRecord{}, fmt.Errorf("get meeting: %w", err)
	}

	responses, err := s.listResponses(ctx, meetingID)
	if err != nil {
		return storage.MeetingRecord{}, err
	}
	record.Responses = responses
	return record, nil
}

// UpdateMeeting replaces one meeting row and its response sheet when the
// stored version matches. A version mismatch returns ErrConflict.
func (s *Store) UpdateMeeting(ctx context.Context, record storage.MeetingRecord) (storage.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.MeetingRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MeetingRecord{}, fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeMeetingRecord(record)
	if err != nil {
		return storage.MeetingRecord{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.MeetingRecord{}, fmt.Errorf("begin meeting update: %w", err)
	}
	rollbackWith := func(cause error) (storage.MeetingRecord, error) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return storage.MeetingRecord{}, fmt.Errorf("%w: rollback meeting update: %v", cause, rollbackErr)
		}
		return storage.MeetingRecord{}, cause
	}

	result, err := tx.ExecContext(ctx, `
UPDATE meetings
SET meeting_date = ?, started_at = ?, ended_at = ?, planned_minutes = ?, actual_minutes = ?, notes = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?
`,
		toMillis(normalized.MeetingDate),
		toNullMillis(normalized.StartedAt),
		toNullMillis(normalized.EndedAt),
		normalized.PlannedMinutes,
		normalized.ActualMinutes,
		normalized.Notes,
		toMillis(normalized.UpdatedAt),
		normalized.ID,
		normalized.Version,
	)
	if err != nil {
		return rollbackWith(fmt.Errorf("update meeting: %w", err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return rollbackWith(fmt.Errorf("update meeting rows affected: %w", err))
	}
	if affected == 0 {
		var exists int
		scanErr := tx.QueryRowContext(ctx, "SELECT 1 FROM meetings WHERE id = ?", normalized.ID).Scan(&exists)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return rollbackWith(storage.ErrNotFound)
		}
		if scanErr != nil {
			return rollbackWith(fmt.Errorf("check meeting existence: %w", scanErr))
		}
		return rollbackWith(storage.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM meeting_responses WHERE meeting_id = ?", normalized.ID); err != nil {
		return rollbackWith(fmt.Errorf("clear meeting responses: %w", err))
	}
	if err := insertResponsesExec(ctx, tx, normalized.ID, normalized.Responses); err != nil {
		return rollbackWith(err)
	}
	if err := tx.Commit(); err != nil {
		return storage.MeetingRecord{}, fmt.Errorf("commit meeting update: %w", err)
	}
	return s.GetMeeting(ctx, normalized.ID)
}

// ListMeetingsBySprint lists one sprint's meetings ordered by date. The
// filter accepts an AIP-160 expression over date, started, and ended.
func (s *Store) ListMeetingsBySprint(ctx context.Context, sprintID string, filter string) ([]storage.MeetingRecord, error) {
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

	where, args, err := meetingFilterSQL(filter)
	if err != nil {
		return nil, err
	}
	query := `
SELECT id, sprint_id, meeting_date, started_at, ended_at, planned_minutes, actual_minutes, notes, version, created_at, updated_at
FROM meetings
WHERE sprint_id = ?`
	queryArgs := append([]any{sprintID}, args...)
	if where != "" {
		query += " AND " + where
	}
	query += "\nORDER BY meeting_date ASC, id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var records []storage.MeetingRecord
	for rows.Next() {
		record, scanErr := scanMeeting(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan meeting row: %w", scanErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting rows: %w", err)
	}

	for i := range records {
		responses, err := s.listResponses(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Responses = responses
	}
	return records, nil
}

// DeleteMeeting deletes one meeting; its responses cascade.
func (s *Store) DeleteMeeting(ctx context.Context, meetingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return storage.ErrNotFound
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM meetings WHERE id = ?", meetingID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meeting rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) listResponses(ctx context.Context, meetingID string) ([]storage.ResponseRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, meeting_id, person_id, display_name, attended, absence_reason, yesterday, today, impediment_id, position
FROM meeting_responses
WHERE meeting_id = ?
ORDER BY position ASC
`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list meeting responses: %w", err)
	}
	defer rows.Close()

	var records []storage.ResponseRecord
	for rows.Next() {
		var record storage.ResponseRecord
		var attended int
		if err := rows.Scan(
			&record.ID,
			&record.MeetingID,
			&record.PersonID,
			&record.DisplayName,
			&attended,
			&record.AbsenceReason,
			&record.Yesterday,
			&record.Today,
			&record.ImpedimentID,
			&record.Position,
		); err != nil {
			return nil, fmt.Errorf("scan meeting response row: %w", err)
		}
		record.Attended = attended != 0
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting response rows: %w", err)
	}
	return records, nil
}

func insertResponsesExec(ctx context.Context, execer sqlExecer, meetingID string, responses []storage.ResponseRecord) error {
	for _, response := range responses {
		attended := 0
		if response.Attended {
			attended = 1
		}
		_, err := execer.ExecContext(ctx, `
INSERT INTO meeting_responses (id, meeting_id, person_id, display_name, attended, absence_reason, yesterday, today, impediment_id, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
			response.ID,
			meetingID,
			response.PersonID,
			response.DisplayName,
			attended,
			response.AbsenceReason,
			response.Yesterday,
			response.Today,
			response.ImpedimentID,
			response.Position,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return storage.ErrConflict
			}
			return fmt.Errorf("insert meeting response: %w", err)
		}
	}
	return nil
}

func scanMeeting(scan scanner) (storage.MeetingRecord, error) {
	var record storage.MeetingRecord
	var meetingDate int64
	var startedAt sql.NullInt64
	var endedAt sql.NullInt64
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&record.ID,
		&record.SprintID,
		&meetingDate,
		&startedAt,
		&endedAt,
		&record.PlannedMinutes,
		&record.ActualMinutes,
		&record.Notes,
		&record.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.MeetingRecord{}, err
	}
	record.MeetingDate = fromMillis(meetingDate)
	record.StartedAt = fromNullMillis(startedAt)
	record.EndedAt = fromNullMillis(endedAt)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func normalizeMeetingRecord(record storage.MeetingRecord) (storage.MeetingRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.SprintID = strings.TrimSpace(record.SprintID)
	if record.ID == "" {
		return storage.MeetingRecord{}, fmt.Errorf("meeting id is required")
	}
	if record.SprintID == "" {
		return storage.MeetingRecord{}, fmt.Errorf("sprint id is required")
	}
	if record.MeetingDate.IsZero() {
		return storage.MeetingRecord{}, fmt.Errorf("meeting date is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.MeetingRecord{}, fmt.Errorf("created_at is required")
	}
	if record.UpdatedAt.IsZero() {
		return storage.MeetingRecord{}, fmt.Errorf("updated_at is required")
	}
	record.MeetingDate = record.MeetingDate.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	if record.StartedAt != nil {
		startedAt := record.StartedAt.UTC()
		record.StartedAt = &startedAt
	}
	if record.EndedAt != nil {
		endedAt := record.EndedAt.UTC()
		record.EndedAt = &endedAt
	}

	normalizedResponses := make([]storage.ResponseRecord, 0, len(record.Responses))
	for position, response := range record.Responses {
		response.MeetingID = record.ID
		response.PersonID = strings.TrimSpace(response.PersonID)
		if response.PersonID == "" {
			return storage.MeetingRecord{}, fmt.Errorf("response person id is required")
		}
		if response.ID == "" {
			response.ID = record.ID + ":" + response.PersonID
		}
		response.Position = position
		normalizedResponses = append(normalizedResponses, response)
	}
	record.Responses = normalizedResponses
	return record, nil
}
