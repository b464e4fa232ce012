package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/planagil/dailies/internal/services/dailies/storage"
)

// PutSprintTask upserts one sprint task row. Tasks are synchronized from the
// planning system, so writes replace whatever is there.
func (s *Store) PutSprintTask(ctx context.Context, record storage.TaskRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	record.SprintID = strings.TrimSpace(record.SprintID)
	record.Code = strings.TrimSpace(record.Code)
	if record.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if record.SprintID == "" {
		return fmt.Errorf("sprint id is required")
	}
	if record.Code == "" {
		return fmt.Errorf("task code is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO sprint_tasks (id, sprint_id, code, title, assignee_id, start_date, end_date, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    sprint_id = excluded.sprint_id,
    code = excluded.code,
    title = excluded.title,
    assignee_id = excluded.assignee_id,
    start_date = excluded.start_date,
    end_date = excluded.end_date,
    position = excluded.position
`,
		record.ID,
		record.SprintID,
		record.Code,
		record.Title,
		strings.TrimSpace(record.AssigneeID),
		toNullMillis(record.StartDate),
		toNullMillis(record.EndDate),
		record.Position,
	)
	if err != nil {
		return fmt.Errorf("put sprint task: %w", err)
	}
	return nil
}

// ListTasksForSprint lists one sprint's tasks in plan order.
func (s *Store) ListTasksForSprint(ctx context.Context, sprintID string) ([]storage.TaskRecord, error) {
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

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, sprint_id, code, title, assignee_id, start_date, end_date, position
FROM sprint_tasks
WHERE sprint_id = ?
ORDER BY position ASC, code ASC
`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list sprint tasks: %w", err)
	}
	defer rows.Close()

	var records []storage.TaskRecord
	for rows.Next() {
		var record storage.TaskRecord
		var startDate, endDate sql.NullInt64
		if err := rows.Scan(
			&record.ID,
			&record.SprintID,
			&record.Code,
			&record.Title,
			&record.AssigneeID,
			&startDate,
			&endDate,
			&record.Position,
		); err != nil {
			return nil, fmt.Errorf("scan sprint task row: %w", err)
		}
		record.StartDate = fromNullMillis(startDate)
		record.EndDate = fromNullMillis(endDate)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprint task rows: %w", err)
	}
	return records, nil
}

// PutTeamMember upserts one sprint roster row.
func (s *Store) PutTeamMember(ctx context.Context, record storage.MemberRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.SprintID = strings.TrimSpace(record.SprintID)
	record.PersonID = strings.TrimSpace(record.PersonID)
	if record.SprintID == "" {
		return fmt.Errorf("sprint id is required")
	}
	if record.PersonID == "" {
		return fmt.Errorf("person id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO team_members (sprint_id, person_id, display_name, role, position)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (sprint_id, person_id) DO UPDATE SET
    display_name = excluded.display_name,
    role = excluded.role,
    position = excluded.position
`,
		record.SprintID,
		record.PersonID,
		record.DisplayName,
		record.Role,
		record.Position,
	)
	if err != nil {
		return fmt.Errorf("put team member: %w", err)
	}
	return nil
}

// ListTeamMembers lists one sprint's roster in sheet order.
func (s *Store) ListTeamMembers(ctx context.Context, sprintID string) ([]storage.MemberRecord, error) {
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

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT sprint_id, person_id, display_name, role, position
FROM team_members
WHERE sprint_id = ?
ORDER BY position ASC, person_id ASC
`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var records []storage.MemberRecord
	for rows.Next() {
		var record storage.MemberRecord
		if err := rows.Scan(
			&record.SprintID,
			&record.PersonID,
			&record.DisplayName,
			&record.Role,
			&record.Position,
		); err != nil {
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team member rows: %w", err)
	}
	return records, nil
}

// AppendJournalEntry persists one lifecycle transition row.
func (s *Store) AppendJournalEntry(ctx context.Context, record storage.JournalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	record.EntityType = strings.TrimSpace(record.EntityType)
	record.EntityID = strings.TrimSpace(record.EntityID)
	record.Action = strings.TrimSpace(record.Action)
	if record.ID == "" {
		return fmt.Errorf("journal entry id is required")
	}
	if record.EntityType == "" || record.EntityID == "" {
		return fmt.Errorf("journal entity is required")
	}
	if record.Action == "" {
		return fmt.Errorf("journal action is required")
	}
	if record.At.IsZero() {
		return fmt.Errorf("journal timestamp is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO journal_entries (id, entity_type, entity_id, sprint_id, action, detail, occurred_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		record.ID,
		record.EntityType,
		record.EntityID,
		strings.TrimSpace(record.SprintID),
		record.Action,
		record.Detail,
		toMillis(record.At),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// ListJournalEntriesByEntity lists one entity's transitions oldest first.
func (s *Store) ListJournalEntriesByEntity(ctx context.Context, entityType string, entityID string) ([]storage.JournalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	entityType = strings.TrimSpace(entityType)
	entityID = strings.TrimSpace(entityID)
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("journal entity is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, entity_type, entity_id, sprint_id, action, detail, occurred_at
FROM journal_entries
WHERE entity_type = ? AND entity_id = ?
ORDER BY occurred_at ASC, id ASC
`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var records []storage.JournalRecord
	for rows.Next() {
		var record storage.JournalRecord
		var occurredAt int64
		if err := rows.Scan(
			&record.ID,
			&record.EntityType,
			&record.EntityID,
			&record.SprintID,
			&record.Action,
			&record.Detail,
			&occurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry row: %w", err)
		}
		record.At = fromMillis(occurredAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entry rows: %w", err)
	}
	return records, nil
}
